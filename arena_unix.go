//go:build unix

package blockpool

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// reserveArena maps n bytes of anonymous private memory. The mapping lives
// outside the Go heap, so the arena costs the garbage collector nothing.
func reserveArena(n int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "blockpool: mmap %d bytes", n)
	}
	return mem, nil
}

// releaseArena unmaps memory obtained from reserveArena.
func releaseArena(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return errors.Wrap(err, "blockpool: munmap")
	}
	return nil
}
