package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoCredits       = errors.New("no credits remaining")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrToolUnavailable = errors.New("tool processor unavailable")
)
