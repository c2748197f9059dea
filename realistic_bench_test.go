package blockpool

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage tests scenarios where a pool should excel
func BenchmarkRealisticUsage(b *testing.B) {

	// Test 1: Bulk allocate then bulk free, as a frame-based game loop would
	type Vector struct{ X, Y, Z float32 }
	type Bullet struct {
		Speed     float32
		Size      float32
		Direction Vector
	}
	const burst = 1000

	b.Run("BulletBurst/Pool", func(b *testing.B) {
		p, err := NewTypedPool[Bullet](burst)
		if err != nil {
			b.Fatal(err)
		}
		defer p.Release()
		bullets := make([]*Bullet, burst)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range bullets {
				bullets[j] = p.Allocate()
				bullets[j].Speed = float32(j)
			}
			for _, bl := range bullets {
				p.Deallocate(bl)
			}
		}
	})

	b.Run("BulletBurst/Builtin", func(b *testing.B) {
		bullets := make([]*Bullet, burst)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range bullets {
				bullets[j] = &Bullet{Speed: float32(j)}
			}
			clear(bullets)
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 2: Churn - steady state with one allocation freed per allocation
	b.Run("Churn/Pool", func(b *testing.B) {
		p, err := NewTypedPool[[64]byte](burst)
		if err != nil {
			b.Fatal(err)
		}
		defer p.Release()
		ring := make([]*[64]byte, burst/2)
		for j := range ring {
			ring[j] = p.Allocate()
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			k := i % len(ring)
			p.Deallocate(ring[k])
			ring[k] = p.Allocate()
			ring[k][0] = byte(i)
		}
	})

	b.Run("Churn/Builtin", func(b *testing.B) {
		ring := make([]*[64]byte, burst/2)
		for j := range ring {
			ring[j] = new([64]byte)
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			k := i % len(ring)
			ring[k] = new([64]byte)
			ring[k][0] = byte(i)
		}
	})

	// Test 3: Handle-based slab for pointerful types
	type Node struct {
		Key   int
		Value string
		Next  *Node
	}

	b.Run("PointerfulNodes/Slab", func(b *testing.B) {
		s, err := NewSlab[Node](burst)
		if err != nil {
			b.Fatal(err)
		}
		handles := make([]Handle, burst)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range handles {
				handles[j] = s.Allocate()
				s.Get(handles[j]).Key = j
			}
			for _, h := range handles {
				s.Deallocate(h)
			}
		}
	})

	b.Run("PointerfulNodes/Builtin", func(b *testing.B) {
		nodes := make([]*Node, burst)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range nodes {
				nodes[j] = &Node{Key: j}
			}
			clear(nodes)
		}
	})
}

// BenchmarkConcurrencyPatterns compares a shared locked pool with one pool
// per goroutine
func BenchmarkConcurrencyPatterns(b *testing.B) {
	b.Run("SafePool_Parallel", func(b *testing.B) {
		s, err := NewSafePool(64, 1<<16, 8)
		if err != nil {
			b.Fatal(err)
		}
		defer s.Release()

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				slot := s.Allocate()
				s.Deallocate(slot)
			}
		})
	})

	b.Run("Pool_PerGoroutine", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			p, err := NewPool(64, 1024, 8)
			if err != nil {
				b.Error(err)
				return
			}
			defer p.Release()

			for pb.Next() {
				slot := p.Allocate()
				p.Deallocate(slot)
			}
		})
	})

	b.Run("Builtin_Parallel", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = make([]byte, 64)
			}
		})
	})
}
