package workerpool

import (
	"context"
	"errors"
	"sync"
	"taskmanager/internal/events"

	"github.com/charmbracelet/log"
)

var (
	ErrPoolFull   = errors.New("event pool is full")
	ErrPoolClosed = errors.New("event pool is closed")
)

// Pool delivers events to a handler on a fixed number of workers.
// Enqueue never blocks: a full queue is reported to the caller.
type Pool struct {
	mu      sync.RWMutex
	closed  bool
	queue   chan events.Event
	handler events.Handler
	logger  *log.Logger
	wg      sync.WaitGroup
}

func New(poolSize int, handler events.Handler, logger *log.Logger) *Pool {
	return &Pool{
		queue:   make(chan events.Event, poolSize),
		handler: handler,
		logger:  logger,
	}
}

// Start launches n workers. Zero workers leaves events queued.
func (p *Pool) Start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()

	for e := range p.queue {
		if err := p.handler.Handle(context.Background(), e); err != nil && p.logger != nil {
			p.logger.Error("event handler failed", "kind", e.Kind, "task_id", e.TaskID, "err", err)
		}
	}
}

func (p *Pool) Enqueue(e events.Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.queue <- e:
		return nil
	default:
		return ErrPoolFull
	}
}

// Publish makes the pool an events.Publisher.
func (p *Pool) Publish(_ context.Context, e events.Event) error {
	return p.Enqueue(e)
}

// Shutdown stops accepting events and waits for queued ones to be handled.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
