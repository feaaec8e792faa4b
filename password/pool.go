package password

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolClosed reports a Hash or Verify call against a closed pool.
var ErrPoolClosed = errors.New("password pool closed")

// Pool executes hashing and verification on a fixed set of worker
// goroutines so the deliberately CPU-expensive derivation never runs on a
// request-serving goroutine. Callers block until their job completes, is
// cancelled via ctx, or the pool shuts down; a lost worker surfaces as an
// error, never as a hang.
type Pool struct {
	hasher *Hasher
	jobs   chan func()
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewPool starts workers goroutines around hasher. A non-positive workers
// count defaults to GOMAXPROCS.
func NewPool(hasher *Hasher, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		hasher: hasher,
		jobs:   make(chan func()),
		done:   make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			job()
		case <-p.done:
			return
		}
	}
}

func (p *Pool) submit(ctx context.Context, job func()) error {
	select {
	case p.jobs <- job:
		return nil
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Hash derives an encoded hash for raw on a pool worker.
func (p *Pool) Hash(ctx context.Context, raw string) (string, error) {
	type result struct {
		encoded string
		err     error
	}
	out := make(chan result, 1)

	err := p.submit(ctx, func() {
		encoded, err := p.hasher.Hash(raw)
		out <- result{encoded: encoded, err: err}
	})
	if err != nil {
		return "", err
	}

	select {
	case r := <-out:
		return r.encoded, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify checks raw against encoded on a pool worker. It returns
// (false, nil) on a clean mismatch and an error for malformed records,
// cancellation, or pool shutdown.
func (p *Pool) Verify(ctx context.Context, raw, encoded string) (bool, error) {
	type result struct {
		ok  bool
		err error
	}
	out := make(chan result, 1)

	err := p.submit(ctx, func() {
		ok, err := p.hasher.Verify(raw, encoded)
		out <- result{ok: ok, err: err}
	})
	if err != nil {
		return false, err
	}

	select {
	case r := <-out:
		return r.ok, r.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Close stops the workers. In-flight jobs finish; subsequent calls return
// ErrPoolClosed.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
