package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrStopped is returned when work is submitted to a loop that has exited.
var ErrStopped = errors.New("event loop stopped")

// DefaultQueueSize is the number of tasks that can wait before Post blocks.
const DefaultQueueSize = 64

// Loop runs tasks one at a time on a single goroutine. Code that is not safe
// for concurrent use, like a menu engine, is driven exclusively through it.
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
	once    sync.Once
}

// New creates a loop with the given queue size; non-positive sizes use DefaultQueueSize.
func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		tasks:   make(chan func(), queueSize),
		stopped: make(chan struct{}),
	}
}

// Run executes tasks until the context is canceled. It always returns nil so it
// can run as an errgroup member next to a server.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.stopped) })

	slog.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			slog.Debug("event loop stopped")
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn without waiting for it to run. It reports false if the loop has exited.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// After runs fn on the loop once d has elapsed. The returned function stops the
// timer; a callback that already fired may still be queued and will run.
func (l *Loop) After(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, func() { l.Post(fn) })
	return func() { t.Stop() }
}
