package domain

import "time"

// UsageLog is one append-only record of a tool invocation attempt.
// Rows are never mutated or deleted by request handling; only the retention
// worker prunes old entries.
type UsageLog struct {
	ID            string
	UserID        string
	ToolName      string
	FileSizeBytes int64
	Success       bool
	ErrorMessage  string
	Country       string
	CreatedAt     time.Time
}
