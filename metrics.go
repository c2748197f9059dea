package blockpool

// PoolMetrics contains statistical information about a pool.
type PoolMetrics struct {
	SlotSize       int     // Bytes per slot
	SlotCount      int     // Fixed number of slots
	Alignment      int     // Slot alignment in bytes
	Size           int     // Usable arena size, SlotSize*SlotCount
	Reserved       int     // Bytes reserved, including alignment padding
	UsedMemory     int     // Bytes held by allocated slots
	NumAllocations int     // Allocated slots
	Utilization    float64 // Ratio of allocated to total slots (0.0-1.0)
}

// Utilization returns the ratio of allocated slots to total slots (0.0 to 1.0).
// Returns 0.0 after Release.
func (p *Pool) Utilization() float64 {
	if p.mem == nil {
		return 0
	}
	return float64(p.numAllocations) / float64(p.slotCount)
}

// Metrics returns a snapshot of pool statistics.
func (p *Pool) Metrics() PoolMetrics {
	return PoolMetrics{
		SlotSize:       p.SlotSize(),
		SlotCount:      p.SlotCount(),
		Alignment:      p.Alignment(),
		Size:           p.Size(),
		Reserved:       p.Reserved(),
		UsedMemory:     p.UsedMemory(),
		NumAllocations: p.NumAllocations(),
		Utilization:    p.Utilization(),
	}
}

// Thread-safe metrics for SafePool

// UsedMemory thread-safely returns the bytes held by allocated slots.
func (s *SafePool) UsedMemory() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.UsedMemory()
}

// NumAllocations thread-safely returns the number of allocated slots.
func (s *SafePool) NumAllocations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.NumAllocations()
}

// Available thread-safely returns the number of free slots.
func (s *SafePool) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Available()
}

// Size thread-safely returns the usable arena size.
func (s *SafePool) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Size()
}

// Utilization thread-safely returns the ratio of allocated to total slots.
func (s *SafePool) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Utilization()
}

// Metrics thread-safely returns a snapshot of pool statistics.
func (s *SafePool) Metrics() PoolMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Metrics()
}

// Metrics thread-safely returns a snapshot of pool statistics.
func (s *SafeTypedPool[T]) Metrics() PoolMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Metrics()
}

// NumAllocations thread-safely returns the number of allocated slots.
func (s *SafeTypedPool[T]) NumAllocations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.NumAllocations()
}
