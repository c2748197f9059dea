// Package blockpool implements a fixed-size block allocator (pool allocator) for Go.
//
// # Overview
//
// A pool allocator reserves one contiguous arena up front and carves it into
// slots of identical size and alignment. Free slots are threaded into an
// intrusive singly-linked list stored in the slots themselves, so allocation
// and deallocation are O(1) pointer swaps with no searching and no
// fragmentation. This is particularly useful for:
//
//   - Large numbers of short-lived objects of one type
//   - Keeping hot objects out of the garbage-collected heap
//   - Hard upper bounds on memory use
//
// # Basic Usage
//
//	p, err := blockpool.NewPool(64, 1024, 8) // 1024 slots of 64 bytes, 8-aligned
//	if err != nil {
//		return err
//	}
//	defer p.Release()
//
//	slot := p.Allocate() // nil when the pool is exhausted
//	if slot == nil {
//		return errFull
//	}
//	p.Deallocate(slot)
//
// The typed layer derives slot size and alignment from the element type:
//
//	bullets, err := blockpool.NewTypedPool[Bullet](10000)
//	b := bullets.Allocate() // *Bullet, uninitialized
//	*b = Bullet{Speed: 3}
//	bullets.Deallocate(b)
//
// # Element Types
//
// Arena memory is not scanned by the garbage collector. TypedPool therefore
// rejects element types containing Go pointers with ErrPointerType. Slab is
// an index-based alternative backed by an ordinary slice that accepts any
// element type.
//
// # Thread Safety
//
// Pool, TypedPool and Slab are not thread-safe. For concurrent access, use
// SafePool or SafeTypedPool, which guard every call with a mutex.
//
// # Important Notes
//
//   - Allocate returns nil (Slab: NoHandle) when no slot is free; the pool never grows
//   - Deallocate does not detect double frees or foreign pointers
//   - Slots are never zeroed, constructed or finalized by the pool
//   - Release frees the whole arena regardless of outstanding slots
//
// # Metrics and Monitoring
//
//	m := p.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Memory in use: %d bytes\n", m.UsedMemory)
//
// Package poolprom exports the same metrics to Prometheus.
package blockpool
