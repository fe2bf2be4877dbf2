// Package pdf implements the built-in tool runners. Page-level and security
// tools run on pdfcpu; OCR and cross-format conversions have no built-in
// runner and report themselves unavailable when invoked.
package pdf

import (
	"context"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Request carries the staged inputs and parsed options for one invocation.
type Request struct {
	InputPaths []string
	OutputDir  string
	Options    Options
}

// Options holds the per-tool parameters parsed from the upload form.
type Options struct {
	Pages         []string
	Rotation      int
	Span          int
	WatermarkText string
	Password      string
	OwnerPassword string
	Title         string
	Author        string
	Subject       string
}

// Runner executes one tool and returns the produced file paths.
type Runner func(ctx context.Context, req Request) ([]string, error)

// Service resolves tool ids onto runners.
type Service struct {
	logger  zerolog.Logger
	runners map[string]Runner
}

// NewService registers the built-in runners.
func NewService(logger zerolog.Logger) *Service {
	s := &Service{logger: logger}
	s.runners = map[string]Runner{
		"merge":         s.Merge,
		"split":         s.Split,
		"extract-pages": s.ExtractPages,
		"remove-pages":  s.RemovePages,
		"organize":      s.Organize,
		"compress":      s.Compress,
		"repair":        s.Repair,
		"rotate":        s.Rotate,
		"watermark":     s.Watermark,
		"page-numbers":  s.PageNumbers,
		"sign":          s.Sign,
		"protect":       s.Protect,
		"unlock":        s.Unlock,
		"metadata":      s.Metadata,
		"jpg-to-pdf":    s.ImagesToPDF,
	}
	return s
}

// Runner returns the runner for a tool id, if one is built in.
func (s *Service) Runner(toolID string) (Runner, bool) {
	r, ok := s.runners[toolID]
	return r, ok
}

// Run executes the tool. Catalog entries without a built-in runner yield
// domain.ErrToolUnavailable.
func (s *Service) Run(ctx context.Context, toolID string, req Request) ([]string, error) {
	r, ok := s.runners[toolID]
	if !ok {
		return nil, domain.ErrToolUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r(ctx, req)
}
