package access

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const outboxTaskTimeout = 10 * time.Second

// Outbox runs fire-and-forget writes off the request path. Delivery is best
// effort: a full queue drops the task, a failing task is only logged. Nothing
// enqueued here may ever surface an error to a user-facing operation.
type Outbox struct {
	tasks  chan outboxTask
	logger zerolog.Logger
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type outboxTask struct {
	name string
	fn   func(ctx context.Context) error
}

// NewOutbox starts the drain goroutine with a queue of the given size.
func NewOutbox(size int, logger zerolog.Logger) *Outbox {
	if size <= 0 {
		size = 64
	}
	o := &Outbox{
		tasks:  make(chan outboxTask, size),
		logger: logger,
	}
	o.wg.Add(1)
	go o.drain()
	return o
}

// Enqueue queues fn for asynchronous execution. Returns false when the task
// was dropped (queue full or outbox closed).
func (o *Outbox) Enqueue(name string, fn func(ctx context.Context) error) bool {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		o.logger.Warn().Str("task", name).Msg("outbox closed, task dropped")
		return false
	}
	select {
	case o.tasks <- outboxTask{name: name, fn: fn}:
		o.mu.Unlock()
		return true
	default:
		o.mu.Unlock()
		o.logger.Warn().Str("task", name).Msg("outbox full, task dropped")
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (o *Outbox) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.tasks)
	o.mu.Unlock()
	o.wg.Wait()
}

func (o *Outbox) drain() {
	defer o.wg.Done()
	for task := range o.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), outboxTaskTimeout)
		if err := task.fn(ctx); err != nil {
			o.logger.Error().Err(err).Str("task", task.name).Msg("outbox task failed")
		}
		cancel()
	}
}
