/*
Package pool provides a fixed-size pool of worker goroutines for
executing fork/join task trees.

A Pool is created once and reused across many invocations, and must be
closed by its owner:

	p := pool.New(runtime.GOMAXPROCS(0))
	defer p.Close()

Tasks are submitted with Submit, which returns a Future. Waiting on a
Future that no worker has started yet executes the task on the waiting
goroutine instead. A waiter therefore only ever blocks on a task that
is already running, so a pool with a bounded number of workers cannot
deadlock on a tree of nested Submit and Wait calls, no matter how deep
the tree is.
*/
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/exascience/forkcalc/internal"
)

const (
	pending int32 = iota
	running
	done
)

// A Future represents the asynchronous execution of a submitted task.
type Future struct {
	fn    func() error
	state atomic.Int32
	done  chan struct{}
	err   error
	p     interface{}
}

// claim marks the future as running. Only one caller succeeds.
func (f *Future) claim() bool {
	return f.state.CompareAndSwap(pending, running)
}

func (f *Future) run() {
	defer func() {
		f.p = internal.WrapPanic(recover())
		f.state.Store(done)
		close(f.done)
	}()
	f.err = f.fn()
}

/*
Wait blocks until the task has terminated and returns its error value.

If the task has not been started by a worker yet, Wait executes it on
the calling goroutine. If the task panicked, Wait panics with the
recovered panic value, annotated with the stack trace of the goroutine
that executed the task.

Wait may be called more than once, and from several goroutines.
*/
func (f *Future) Wait() error {
	if f.claim() {
		f.run()
	} else {
		<-f.done
	}
	if f.p != nil {
		panic(f.p)
	}
	return f.err
}

// Stats holds counters describing the work executed by a pool.
type Stats struct {
	// Submitted is the number of tasks passed to Submit or Invoke.
	Submitted int64
	// Stolen is the number of tasks executed by worker goroutines.
	Stolen int64
	// Helped is the number of tasks executed by a goroutine waiting on them.
	Helped int64
}

// Option configures a Pool.
type Option func(p *Pool)

// WithQueueSize sets the capacity of the task queue. Values smaller than 1
// are ignored.
func WithQueueSize(size int) Option {
	return func(p *Pool) {
		if size > 0 {
			p.queueSize = size
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

/*
A Pool is a fixed-size set of worker goroutines that execute submitted
tasks.

The zero Pool is not valid; use New.
*/
type Pool struct {
	workers   int
	queueSize int
	log       *zap.Logger

	mutex  sync.RWMutex
	closed bool
	tasks  chan *Future
	wg     sync.WaitGroup

	submitted, stolen, helped atomic.Int64
}

/*
New creates a pool with the given number of workers, which are started
immediately and run until Close is called.

If workers is <= 0, runtime.GOMAXPROCS(0) is used instead. The default
queue size is four times the number of workers.
*/
func New(workers int, opts ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers:   workers,
		queueSize: 4 * workers,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tasks = make(chan *Future, p.queueSize)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	p.log.Debug("pool started", zap.Int("workers", workers), zap.Int("queue", p.queueSize))
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.tasks {
		// Tasks already claimed by a waiter are skipped.
		if f.claim() {
			p.stolen.Add(1)
			f.run()
		}
	}
}

// Workers returns the number of worker goroutines of this pool.
func (p *Pool) Workers() int {
	return p.workers
}

/*
Submit schedules fn for asynchronous execution and returns immediately.

There is no ordering guarantee with respect to other submitted
tasks. If the queue is full, or the pool has been closed, the task
stays pending and is executed by the first goroutine that waits on
the returned Future.

Submit panics if fn is nil.
*/
func (p *Pool) Submit(fn func() error) *Future {
	if fn == nil {
		panic("invalid task: nil")
	}
	p.submitted.Add(1)
	f := &Future{fn: fn, done: make(chan struct{})}
	p.mutex.RLock()
	if !p.closed {
		select {
		case p.tasks <- f:
		default:
		}
	}
	p.mutex.RUnlock()
	return f
}

// RunInline executes fn synchronously on the calling goroutine. It is how
// parallel.Do runs the half of a fork that is not submitted.
func (p *Pool) RunInline(fn func() error) error {
	return fn()
}

/*
Invoke submits fn and waits for its completion, including all the
work it spawns and waits for, and returns its error value.

If fn panics, Invoke panics with the recovered panic value.
*/
func (p *Pool) Invoke(fn func() error) error {
	return p.Await(p.Submit(fn))
}

// Await waits on f, counting the task as helped if the calling goroutine
// ends up executing it.
func (p *Pool) Await(f *Future) error {
	if f.claim() {
		p.helped.Add(1)
		f.run()
	}
	return f.Wait()
}

// Stats returns a snapshot of the counters of this pool.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Stolen:    p.stolen.Load(),
		Helped:    p.helped.Load(),
	}
}

/*
Close shuts down the pool and waits for the workers to terminate. Tasks
that are still queued are either executed by the workers before they
terminate, or by the goroutines waiting on them.

Calling Close more than once is safe.
*/
func (p *Pool) Close() {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mutex.Unlock()
	p.wg.Wait()
	s := p.Stats()
	p.log.Debug("pool closed",
		zap.Int64("submitted", s.Submitted),
		zap.Int64("stolen", s.Stolen),
		zap.Int64("helped", s.Helped),
	)
}
