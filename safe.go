package blockpool

import (
	"sync"
	"unsafe"
)

// SafePool is a mutex-protected wrapper around Pool for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type SafePool struct {
	mu sync.Mutex
	p  *Pool
}

// NewSafePool creates a thread-safe pool. Parameters are those of NewPool.
func NewSafePool(slotSize, slotCount, alignment int) (*SafePool, error) {
	p, err := NewPool(slotSize, slotCount, alignment)
	if err != nil {
		return nil, err
	}
	return &SafePool{p: p}, nil
}

// Allocate thread-safely pops a slot, or returns nil when exhausted.
func (s *SafePool) Allocate() unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Allocate()
}

// Deallocate thread-safely returns a slot to the pool.
func (s *SafePool) Deallocate(slot unsafe.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Deallocate(slot)
}

// Release thread-safely returns the arena.
func (s *SafePool) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Release()
}

// SafeTypedPool is a mutex-protected wrapper around TypedPool.
type SafeTypedPool[T any] struct {
	mu sync.Mutex
	t  *TypedPool[T]
}

// NewSafeTypedPool creates a thread-safe typed pool. Parameters are those of
// NewTypedPool.
func NewSafeTypedPool[T any](slotCount int, opts ...Option) (*SafeTypedPool[T], error) {
	t, err := NewTypedPool[T](slotCount, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeTypedPool[T]{t: t}, nil
}

// Allocate thread-safely returns storage for one T, or nil when exhausted.
func (s *SafeTypedPool[T]) Allocate() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Allocate()
}

// Deallocate thread-safely returns v's storage to the pool.
func (s *SafeTypedPool[T]) Deallocate(v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Deallocate(v)
}

// Release thread-safely returns the arena.
func (s *SafeTypedPool[T]) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Release()
}
