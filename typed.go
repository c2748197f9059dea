package blockpool

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// Option overrides the slot geometry a TypedPool derives from its element type.
type Option func(*options)

type options struct {
	slotSize  int
	alignment int
}

// WithSlotSize sets the slot size instead of unsafe.Sizeof(T). It must not be
// smaller than T. Use it to pad elements narrower than a pointer.
func WithSlotSize(n int) Option {
	return func(o *options) {
		o.slotSize = n
	}
}

// WithAlignment sets the slot alignment instead of unsafe.Alignof(T).
func WithAlignment(n int) Option {
	return func(o *options) {
		o.alignment = n
	}
}

// TypedPool hands out uninitialized storage for values of type T from a Pool.
// It never constructs or finalizes a T: the caller initializes a slot after
// Allocate and is done with it before Deallocate.
//
// T must not contain Go pointers (including strings, slices, maps, channels,
// funcs and interfaces). The arena is invisible to the garbage collector, so
// anything it references could be freed underneath it. Use Slab for such T.
type TypedPool[T any] struct {
	p *Pool
}

// NewTypedPool creates a pool of slotCount slots sized and aligned for T.
func NewTypedPool[T any](slotCount int, opts ...Option) (*TypedPool[T], error) {
	var zero T
	o := options{
		slotSize:  int(unsafe.Sizeof(zero)),
		alignment: int(unsafe.Alignof(zero)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(typ) {
		return nil, errors.Wrapf(ErrPointerType, "%s", typ)
	}
	if o.slotSize < int(unsafe.Sizeof(zero)) {
		return nil, errors.Wrapf(ErrSlotSize, "slot size %d is smaller than %s (%d bytes)",
			o.slotSize, typ, unsafe.Sizeof(zero))
	}

	p, err := NewPool(o.slotSize, slotCount, o.alignment)
	if err != nil {
		return nil, errors.WithMessagef(err, "pool of %s", typ)
	}
	return &TypedPool[T]{p: p}, nil
}

// Allocate returns storage for one T, or nil when the pool is exhausted.
// The storage is not zeroed.
func (t *TypedPool[T]) Allocate() *T {
	return (*T)(t.p.Allocate())
}

// Deallocate returns v's storage to the pool without touching the value.
func (t *TypedPool[T]) Deallocate(v *T) {
	t.p.Deallocate(unsafe.Pointer(v))
}

// Release returns the arena in one call. See Pool.Release.
func (t *TypedPool[T]) Release() error {
	return t.p.Release()
}

// Start returns the first slot of the arena.
func (t *TypedPool[T]) Start() *T {
	return (*T)(t.p.Start())
}

// Size returns the usable arena size in bytes.
func (t *TypedPool[T]) Size() int { return t.p.Size() }

// Reserved returns the bytes reserved for the arena.
func (t *TypedPool[T]) Reserved() int { return t.p.Reserved() }

// UsedMemory returns the bytes held by allocated slots.
func (t *TypedPool[T]) UsedMemory() int { return t.p.UsedMemory() }

// NumAllocations returns the number of allocated slots.
func (t *TypedPool[T]) NumAllocations() int { return t.p.NumAllocations() }

// Available returns the number of free slots.
func (t *TypedPool[T]) Available() int { return t.p.Available() }

// SlotSize returns the slot size in bytes.
func (t *TypedPool[T]) SlotSize() int { return t.p.SlotSize() }

// SlotCount returns the number of slots.
func (t *TypedPool[T]) SlotCount() int { return t.p.SlotCount() }

// Alignment returns the slot alignment.
func (t *TypedPool[T]) Alignment() int { return t.p.Alignment() }

// Metrics returns a snapshot of pool statistics.
func (t *TypedPool[T]) Metrics() PoolMetrics { return t.p.Metrics() }

// hasPointers reports whether values of typ hold anything the garbage
// collector would need to trace.
func hasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.String, reflect.Slice,
		reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	case reflect.Array:
		return typ.Len() > 0 && hasPointers(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if hasPointers(typ.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
