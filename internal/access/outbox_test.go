package access

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestOutbox_ExecutesQueuedTasks(t *testing.T) {
	o := NewOutbox(8, zerolog.Nop())

	var ran atomic.Int32
	for i := 0; i < 3; i++ {
		if !o.Enqueue("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}) {
			t.Fatal("enqueue rejected with free capacity")
		}
	}
	o.Close()

	if got := ran.Load(); got != 3 {
		t.Fatalf("expected 3 tasks to run, got %d", got)
	}
}

func TestOutbox_DropsWhenFull(t *testing.T) {
	o := NewOutbox(1, zerolog.Nop())
	defer o.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	o.Enqueue("blocker", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	// Drain is busy, so this one sits in the buffer.
	if !o.Enqueue("buffered", func(ctx context.Context) error { return nil }) {
		t.Fatal("expected the buffered task to be accepted")
	}
	// Buffer full now.
	if o.Enqueue("dropped", func(ctx context.Context) error { return nil }) {
		t.Fatal("expected a full outbox to drop the task")
	}
	close(release)
}

func TestOutbox_ClosedRejectsTasks(t *testing.T) {
	o := NewOutbox(4, zerolog.Nop())
	o.Close()

	if o.Enqueue("late", func(ctx context.Context) error { return nil }) {
		t.Fatal("expected a closed outbox to reject tasks")
	}
}
