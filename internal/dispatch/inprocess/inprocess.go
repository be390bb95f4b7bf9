// Package inprocess is a channel-backed Dispatcher for tests and local
// runs: tasks are handed to a worker goroutine pool instead of crossing a
// network boundary.
package inprocess

import (
	"context"
	"sync"

	"github.com/dom/matchcore/internal/dispatch"
	"github.com/google/uuid"
)

// Handler processes one dispatched task.
type Handler func(ctx context.Context, taskName string, args map[string]string) error

type task struct {
	id       string
	ctx      context.Context
	taskName string
	args     map[string]string
}

// Dispatcher runs tasks on a fixed pool of worker goroutines reading from
// a single channel.
type Dispatcher struct {
	handler Handler
	tasks   chan task
	stop    chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// New starts a Dispatcher with the given worker count. handler is invoked
// for every enqueued task; its error is discarded by the worker, not
// returned to Enqueue (delivery is at-least-once, fire-and-forget).
func New(workers int, handler Handler) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		handler: handler,
		tasks:   make(chan task, 64),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	go func() {
		d.wg.Wait()
		close(d.done)
	}()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.stop:
			return
		case t, ok := <-d.tasks:
			if !ok {
				return
			}
			_ = d.handler(t.ctx, t.taskName, t.args)
		}
	}
}

var _ dispatch.Dispatcher = (*Dispatcher)(nil)

// Enqueue hands a task to the worker pool. It never blocks on task
// completion.
func (d *Dispatcher) Enqueue(ctx context.Context, taskName string, args map[string]string) (string, error) {
	id := uuid.NewString()
	select {
	case d.tasks <- task{id: id, ctx: ctx, taskName: taskName, args: args}:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop signals workers to exit once the current task finishes, and waits
// for them to drain.
func (d *Dispatcher) Stop() {
	close(d.stop)
	<-d.done
}
