// Package jobs runs background work through a small typed worker pool
// with bounded retries. Report rendering is its only current consumer,
// but the pool is payload-agnostic.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler processes one payload. A returned error triggers a retry until
// the pool's attempt budget is exhausted.
type Handler[P any] func(context.Context, P) error

// Options configures a Pool. Zero values fall back to one worker, a
// buffer of four per worker, three attempts, one-second backoff, and a
// no-op logger.
type Options struct {
	Workers  int
	Buffer   int
	Attempts int
	Backoff  time.Duration
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Buffer <= 0 {
		o.Buffer = o.Workers * 4
	}
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.Backoff <= 0 {
		o.Backoff = time.Second
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

type task[P any] struct {
	id      string
	payload P
}

// Pool is an in-process worker pool over payloads of type P.
type Pool[P any] struct {
	name    string
	handler Handler[P]
	opts    Options

	tasks  chan task[P]
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// NewPool builds a pool; call Start before Submit.
func NewPool[P any](name string, handler Handler[P], opts Options) *Pool[P] {
	opts = opts.withDefaults()
	return &Pool[P]{
		name:    name,
		handler: handler,
		opts:    opts,
		tasks:   make(chan task[P], opts.Buffer),
	}
}

// Start launches the workers. Calling Start twice is a no-op.
func (p *Pool[P]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.work(ctx)
	}
	p.running = true
	p.opts.Logger.Info("worker pool started",
		zap.String("pool", p.name), zap.Int("workers", p.opts.Workers))
}

// Stop cancels the workers and waits for in-flight tasks to finish.
func (p *Pool[P]) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
	p.opts.Logger.Info("worker pool stopped", zap.String("pool", p.name))
}

// Submit enqueues a payload and returns the generated task id.
func (p *Pool[P]) Submit(payload P) (string, error) {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	if !running {
		return "", fmt.Errorf("jobs: pool %s not started", p.name)
	}

	t := task[P]{id: uuid.NewString(), payload: payload}
	select {
	case p.tasks <- t:
		return t.id, nil
	default:
		return "", fmt.Errorf("jobs: pool %s queue full", p.name)
	}
}

func (p *Pool[P]) work(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-p.tasks:
			p.run(ctx, t)
		}
	}
}

// run executes a task, retrying with a fixed backoff until it succeeds
// or the attempt budget runs out.
func (p *Pool[P]) run(ctx context.Context, t task[P]) {
	var err error
	for attempt := 1; attempt <= p.opts.Attempts; attempt++ {
		if err = p.handler(ctx, t.payload); err == nil {
			return
		}
		p.opts.Logger.Warn("task failed",
			zap.String("pool", p.name), zap.String("task_id", t.id),
			zap.Int("attempt", attempt), zap.Error(err))
		if attempt == p.opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.opts.Backoff):
		}
	}
	p.opts.Logger.Error("task abandoned",
		zap.String("pool", p.name), zap.String("task_id", t.id), zap.Error(err))
}
