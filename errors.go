package blockpool

import "errors"

var (
	// ErrSlotSize indicates a slot too small to hold a free-list link, or one
	// that is not a multiple of the requested alignment.
	ErrSlotSize = errors.New("blockpool: invalid slot size")

	// ErrSlotCount indicates a non-positive or unrepresentable slot count.
	ErrSlotCount = errors.New("blockpool: slot count must be positive")

	// ErrAlignment indicates an alignment that is not a nonzero power of two.
	ErrAlignment = errors.New("blockpool: alignment must be a nonzero power of two")

	// ErrArenaSize indicates that slot size times slot count overflows int.
	ErrArenaSize = errors.New("blockpool: arena size overflows int")

	// ErrPointerType indicates an element type that holds Go pointers and
	// therefore cannot live in an arena the garbage collector does not scan.
	ErrPointerType = errors.New("blockpool: element type contains pointers")
)
