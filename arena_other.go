//go:build !unix

package blockpool

// reserveArena allocates the arena on the Go heap. The slice is pointer-free,
// so the collector never scans the links threaded through it.
func reserveArena(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// releaseArena drops the heap arena; the collector reclaims it once the pool
// no longer references it.
func releaseArena([]byte) error {
	return nil
}
