package blockpool

import (
	"fmt"
	"sync"
	"unsafe"
)

// Example demonstrates basic pool usage
func Example() {
	// 4 slots of 16 bytes, 8-byte aligned
	p, err := NewPool(16, 4, 8)
	if err != nil {
		panic(err)
	}
	defer p.Release() // Always clean up

	var slots []unsafe.Pointer
	for {
		slot := p.Allocate()
		if slot == nil {
			break // exhausted
		}
		slots = append(slots, slot)
	}
	fmt.Printf("Allocated %d slots\n", len(slots))
	fmt.Printf("Memory in use: %d bytes\n", p.UsedMemory())

	// The most recently freed slot is handed out next
	p.Deallocate(slots[2])
	fmt.Printf("Reused freed slot: %v\n", p.Allocate() == slots[2])

	for _, s := range slots {
		p.Deallocate(s)
	}
	fmt.Printf("After freeing, memory in use: %d bytes\n", p.UsedMemory())

	// Output:
	// Allocated 4 slots
	// Memory in use: 64 bytes
	// Reused freed slot: true
	// After freeing, memory in use: 0 bytes
}

// ExampleTypedPool demonstrates type-bound allocation
func ExampleTypedPool() {
	type Vector struct{ X, Y, Z float32 }
	type Bullet struct {
		Speed     float32
		Size      float32
		Direction Vector
	}

	bullets, err := NewTypedPool[Bullet](1000)
	if err != nil {
		panic(err)
	}
	defer bullets.Release()

	// Storage is uninitialized; the caller constructs the value
	b := bullets.Allocate()
	*b = Bullet{Speed: 12.5, Size: 0.5, Direction: Vector{X: 1}}

	fmt.Printf("Slot size: %d bytes, alignment: %d\n", bullets.SlotSize(), bullets.Alignment())
	fmt.Printf("Bullet speed: %.1f\n", b.Speed)
	fmt.Printf("Allocations: %d\n", bullets.NumAllocations())

	bullets.Deallocate(b)
	fmt.Printf("After deallocate: %d\n", bullets.NumAllocations())

	// Output:
	// Slot size: 20 bytes, alignment: 4
	// Bullet speed: 12.5
	// Allocations: 1
	// After deallocate: 0
}

// ExampleSlab demonstrates the handle-based pool for types holding pointers
func ExampleSlab() {
	type Player struct {
		Name  string
		Items []string
	}

	s, err := NewSlab[Player](2)
	if err != nil {
		panic(err)
	}

	h := s.Allocate()
	*s.Get(h) = Player{Name: "ada", Items: []string{"sword"}}
	fmt.Printf("%s has %v\n", s.Get(h).Name, s.Get(h).Items)

	s.Allocate()
	fmt.Printf("Exhausted: %v\n", s.Allocate() == NoHandle)

	s.Deallocate(h)
	fmt.Printf("Reused handle: %v, cleared: %q\n", s.Allocate() == h, s.Get(h).Name)

	// Output:
	// ada has [sword]
	// Exhausted: true
	// Reused handle: true, cleared: ""
}

// ExampleSafePool demonstrates thread-safe pool usage
func ExampleSafePool() {
	s, err := NewSafePool(64, 16, 8)
	if err != nil {
		panic(err)
	}
	defer s.Release()

	var wg sync.WaitGroup
	const numWorkers = 4

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot := s.Allocate()
			*(*int64)(slot) = 42
			s.Deallocate(slot)
		}()
	}

	wg.Wait()
	fmt.Printf("Allocations after workers finish: %d\n", s.NumAllocations())

	// Output:
	// Allocations after workers finish: 0
}

// ExamplePoolMetrics demonstrates monitoring pool usage
func ExamplePoolMetrics() {
	p, err := NewPool(32, 10, 16)
	if err != nil {
		panic(err)
	}
	defer p.Release()

	for i := 0; i < 3; i++ {
		p.Allocate()
	}

	metrics := p.Metrics()
	fmt.Printf("Metrics:\n")
	fmt.Printf("  Slot size: %d bytes\n", metrics.SlotSize)
	fmt.Printf("  Slots: %d\n", metrics.SlotCount)
	fmt.Printf("  Used memory: %d bytes\n", metrics.UsedMemory)
	fmt.Printf("  Capacity: %d bytes\n", metrics.Size)
	fmt.Printf("  Utilization: %.1f%%\n", metrics.Utilization*100)

	// Output:
	// Metrics:
	//   Slot size: 32 bytes
	//   Slots: 10
	//   Used memory: 96 bytes
	//   Capacity: 320 bytes
	//   Utilization: 30.0%
}

// ExamplePool_alignment demonstrates that every slot honours the alignment
func ExamplePool_alignment() {
	p, err := NewPool(64, 4, 64)
	if err != nil {
		panic(err)
	}
	defer p.Release()

	for i := 0; i < 4; i++ {
		fmt.Printf("slot %d alignment remainder: %d\n", i, uintptr(p.Allocate())%64)
	}

	// Output:
	// slot 0 alignment remainder: 0
	// slot 1 alignment remainder: 0
	// slot 2 alignment remainder: 0
	// slot 3 alignment remainder: 0
}
