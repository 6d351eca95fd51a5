package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed indicates an Acquire on a closed pool.
var ErrPoolClosed = errors.New("inference: pool is closed")

// Pool holds a fixed set of ONNX sessions so callers can decode concurrently
// without sharing a session across goroutines.
type Pool struct {
	idle   chan *Session
	size   int
	mu     sync.Mutex
	closed bool
}

// NewPool creates size sessions over the same model file. All sessions are
// created eagerly so a bad model fails construction, not the first decode.
func NewPool(modelPath string, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		idle: make(chan *Session, size),
		size: size,
	}

	for i := 0; i < size; i++ {
		session, err := NewSession(modelPath)
		if err != nil {
			_ = p.Close() // Best-effort cleanup; original error takes precedence
			return nil, fmt.Errorf("creating session %d: %w", i, err)
		}
		p.idle <- session
	}

	return p, nil
}

// Acquire takes a session from the pool, blocking until one is free or ctx
// is done.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case session, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return session, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a session to the pool.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		_ = s.Close()
		return
	}

	select {
	case p.idle <- s:
	default:
		_ = s.Close() // Pool full; drop the excess session
	}
}

// Close closes every session in the pool.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.idle)

	var errs []error
	for session := range p.idle {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the number of sessions the pool was created with.
func (p *Pool) Size() int { return p.size }
