package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

func TestRun_UnknownToolUnavailable(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.Run(context.Background(), "ocr", Request{})
	if !errors.Is(err, domain.ErrToolUnavailable) {
		t.Fatalf("expected ErrToolUnavailable, got %v", err)
	}
}

func TestRunnersRegisteredForBuiltins(t *testing.T) {
	s := NewService(zerolog.Nop())
	for _, id := range []string{
		"merge", "split", "extract-pages", "remove-pages", "organize",
		"compress", "repair", "rotate", "watermark", "page-numbers",
		"sign", "protect", "unlock", "metadata", "jpg-to-pdf",
	} {
		if _, ok := s.Runner(id); !ok {
			t.Errorf("no runner registered for %q", id)
		}
	}
	for _, id := range []string{"ocr", "pdf-to-word", "html-to-pdf"} {
		if _, ok := s.Runner(id); ok {
			t.Errorf("unexpected runner for %q", id)
		}
	}
}

func TestMerge_RequiresTwoInputs(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.Merge(context.Background(), Request{InputPaths: []string{"a.pdf"}})
	if err == nil {
		t.Fatal("expected merge with one input to fail")
	}
}

func TestRotate_RejectsArbitraryAngle(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.Rotate(context.Background(), Request{
		InputPaths: []string{"a.pdf"},
		Options:    Options{Rotation: 45},
	})
	if err == nil {
		t.Fatal("expected 45 degree rotation to be rejected")
	}
}

func TestProtect_RequiresPassword(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.Protect(context.Background(), Request{InputPaths: []string{"a.pdf"}})
	if err == nil {
		t.Fatal("expected protect without password to fail")
	}
}

func TestExtractPages_RequiresSelection(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.ExtractPages(context.Background(), Request{InputPaths: []string{"a.pdf"}})
	if err == nil {
		t.Fatal("expected extract without a page selection to fail")
	}
}

func TestMetadata_RequiresProperties(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.Metadata(context.Background(), Request{InputPaths: []string{"a.pdf"}})
	if err == nil {
		t.Fatal("expected metadata without properties to fail")
	}
}

func TestSingleInputTools_RejectBatches(t *testing.T) {
	s := NewService(zerolog.Nop())
	req := Request{InputPaths: []string{"a.pdf", "b.pdf"}}
	if _, err := s.Compress(context.Background(), req); err == nil {
		t.Fatal("expected compress to reject multiple inputs")
	}
	if _, err := s.Split(context.Background(), req); err == nil {
		t.Fatal("expected split to reject multiple inputs")
	}
}
