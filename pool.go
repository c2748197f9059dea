package blockpool

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// ptrSize is the width of a free-list link stored in a free slot.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// nilLink marks the end of the free list inside a slot.
const nilLink = ^uintptr(0)

// Pool is a fixed-size block allocator over a single pre-reserved arena.
// Free slots form an intrusive LIFO list: the first word of every free slot
// holds the arena offset of the next free slot. Not goroutine-safe; use
// SafePool for concurrent access.
type Pool struct {
	mem   []byte         // raw reservation, nil after Release
	start unsafe.Pointer // first aligned slot
	head  unsafe.Pointer // free-list head, nil when exhausted

	slotSize  int
	slotCount int
	alignment int

	usedMemory     int
	numAllocations int
}

// NewPool reserves an arena of slotCount slots of slotSize bytes, each aligned
// to alignment, and threads every slot onto the free list.
//
// slotSize must be at least the pointer width and a multiple of alignment,
// alignment must be a nonzero power of two and slotCount must be positive.
func NewPool(slotSize, slotCount, alignment int) (*Pool, error) {
	if err := validate(slotSize, slotCount, alignment); err != nil {
		return nil, err
	}

	reserve := slotSize*slotCount + alignment
	mem, err := reserveArena(reserve)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		mem:       mem,
		slotSize:  slotSize,
		slotCount: slotCount,
		alignment: alignment,
	}

	base := unsafe.Pointer(unsafe.SliceData(mem))
	p.start = unsafe.Add(base, adjustment(uintptr(base), uintptr(alignment)))
	p.thread()
	return p, nil
}

// Allocate pops a slot off the free list. It returns nil when the pool is
// exhausted. The slot's contents are whatever the previous owner left there.
func (p *Pool) Allocate() unsafe.Pointer {
	slot := p.head
	if slot == nil {
		p.panicIfReleased()
		return nil
	}
	p.head = p.link(*(*uintptr)(slot))
	p.numAllocations++
	p.usedMemory += p.slotSize
	return slot
}

// Deallocate pushes slot back onto the free list, making it the next slot
// returned by Allocate.
//
// slot must have been returned by Allocate on this pool and not deallocated
// since. Neither condition is checked: a double free or a foreign pointer
// corrupts the free list.
func (p *Pool) Deallocate(slot unsafe.Pointer) {
	p.panicIfReleased()
	*(*uintptr)(slot) = p.offset(p.head)
	p.head = slot
	p.numAllocations--
	p.usedMemory -= p.slotSize
}

// Release returns the arena to the operating system in one call. Outstanding
// slots become dangling; nothing stored in them is finalized. Release is
// idempotent, but any later Allocate or Deallocate panics.
func (p *Pool) Release() error {
	if p.mem == nil {
		return nil
	}
	mem := p.mem
	p.mem = nil
	p.start = nil
	p.head = nil
	p.usedMemory = 0
	p.numAllocations = 0
	return releaseArena(mem)
}

// Start returns the address of the first slot in the arena, or nil after
// Release.
func (p *Pool) Start() unsafe.Pointer {
	return p.start
}

// Size returns the usable arena size, slotSize*slotCount.
func (p *Pool) Size() int {
	if p.mem == nil {
		return 0
	}
	return p.slotSize * p.slotCount
}

// Reserved returns the number of bytes reserved for the arena, including the
// alignment padding.
func (p *Pool) Reserved() int {
	return len(p.mem)
}

// UsedMemory returns the bytes held by currently allocated slots.
func (p *Pool) UsedMemory() int {
	return p.usedMemory
}

// NumAllocations returns the number of currently allocated slots.
func (p *Pool) NumAllocations() int {
	return p.numAllocations
}

// Available returns the number of free slots.
func (p *Pool) Available() int {
	if p.mem == nil {
		return 0
	}
	return p.slotCount - p.numAllocations
}

// SlotSize returns the size in bytes of every slot.
func (p *Pool) SlotSize() int {
	return p.slotSize
}

// SlotCount returns the fixed number of slots in the arena.
func (p *Pool) SlotCount() int {
	return p.slotCount
}

// Alignment returns the alignment guaranteed for every slot address.
func (p *Pool) Alignment() int {
	return p.alignment
}

// thread links slot i to slot i+1 and terminates the list at the last slot.
func (p *Pool) thread() {
	slot := p.start
	for i := 0; i < p.slotCount-1; i++ {
		*(*uintptr)(slot) = uintptr((i + 1) * p.slotSize)
		slot = unsafe.Add(slot, p.slotSize)
	}
	*(*uintptr)(slot) = nilLink
	p.head = p.start
}

// link resolves an offset read from a free slot to its address.
func (p *Pool) link(off uintptr) unsafe.Pointer {
	if off == nilLink {
		return nil
	}
	return unsafe.Add(p.start, off)
}

// offset converts a slot address to the value stored in a free-list link.
func (p *Pool) offset(slot unsafe.Pointer) uintptr {
	if slot == nil {
		return nilLink
	}
	return uintptr(slot) - uintptr(p.start)
}

// panicIfReleased panics if the arena has been released.
func (p *Pool) panicIfReleased() {
	if p.mem == nil {
		panic("blockpool: use after Release()")
	}
}

// validate checks the construction parameters of a Pool.
func validate(slotSize, slotCount, alignment int) error {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return errors.Wrapf(ErrAlignment, "alignment %d", alignment)
	}
	if slotSize < ptrSize {
		return errors.Wrapf(ErrSlotSize, "slot size %d is below pointer width %d", slotSize, ptrSize)
	}
	if slotSize%alignment != 0 {
		return errors.Wrapf(ErrSlotSize, "slot size %d is not a multiple of alignment %d", slotSize, alignment)
	}
	if slotCount <= 0 {
		return errors.Wrapf(ErrSlotCount, "slot count %d", slotCount)
	}
	if slotCount > (math.MaxInt-alignment)/slotSize {
		return errors.Wrapf(ErrArenaSize, "%d slots of %d bytes", slotCount, slotSize)
	}
	return nil
}

// adjustment returns the forward distance from addr to the next address
// aligned to align. The result is in [1, align]: an already aligned address
// still moves a full alignment step, which the reservation accounts for.
func adjustment(addr, align uintptr) uintptr {
	return align - addr&(align-1)
}
