package blockpool

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Handle identifies a slot in a Slab.
type Handle int32

// NoHandle is returned by Slab.Allocate when the slab is exhausted.
const NoHandle Handle = -1

// Slab is a fixed-capacity pool of T backed by an ordinary []T, with the free
// list kept as slot indices in a parallel array. Unlike TypedPool, the
// garbage collector sees every slot, so T may hold pointers. Allocation and
// deallocation are O(1) and reuse slots in LIFO order. Not goroutine-safe.
type Slab[T any] struct {
	items []T
	next  []Handle
	head  Handle

	numAllocations int
}

// NewSlab creates a slab of slotCount elements.
func NewSlab[T any](slotCount int) (*Slab[T], error) {
	if slotCount <= 0 || slotCount > math.MaxInt32 {
		return nil, errors.Wrapf(ErrSlotCount, "slot count %d", slotCount)
	}
	s := &Slab[T]{
		items: make([]T, slotCount),
		next:  make([]Handle, slotCount),
	}
	for i := range s.next {
		s.next[i] = Handle(i + 1)
	}
	s.next[slotCount-1] = NoHandle
	return s, nil
}

// Allocate takes a free slot and returns its handle, or NoHandle when the
// slab is exhausted. A fresh slot always holds the zero value of T.
func (s *Slab[T]) Allocate() Handle {
	h := s.head
	if h == NoHandle {
		return NoHandle
	}
	s.head = s.next[h]
	s.numAllocations++
	return h
}

// Get returns the element stored in slot h. The pointer is valid until h is
// deallocated.
func (s *Slab[T]) Get(h Handle) *T {
	return &s.items[h]
}

// Deallocate resets slot h to the zero value, dropping any references it
// held, and returns it to the free list. h must be currently allocated.
func (s *Slab[T]) Deallocate(h Handle) {
	var zero T
	s.items[h] = zero
	s.next[h] = s.head
	s.head = h
	s.numAllocations--
}

// Size returns the total size of the backing array in bytes.
func (s *Slab[T]) Size() int {
	return s.SlotSize() * len(s.items)
}

// UsedMemory returns the bytes held by allocated slots.
func (s *Slab[T]) UsedMemory() int {
	return s.SlotSize() * s.numAllocations
}

// NumAllocations returns the number of allocated slots.
func (s *Slab[T]) NumAllocations() int {
	return s.numAllocations
}

// Available returns the number of free slots.
func (s *Slab[T]) Available() int {
	return len(s.items) - s.numAllocations
}

// SlotSize returns unsafe.Sizeof(T).
func (s *Slab[T]) SlotSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// SlotCount returns the number of slots.
func (s *Slab[T]) SlotCount() int {
	return len(s.items)
}

// Metrics returns a snapshot of slab statistics.
func (s *Slab[T]) Metrics() PoolMetrics {
	var zero T
	return PoolMetrics{
		SlotSize:       s.SlotSize(),
		SlotCount:      s.SlotCount(),
		Alignment:      int(unsafe.Alignof(zero)),
		Size:           s.Size(),
		Reserved:       s.Size(),
		UsedMemory:     s.UsedMemory(),
		NumAllocations: s.numAllocations,
		Utilization:    float64(s.numAllocations) / float64(len(s.items)),
	}
}
