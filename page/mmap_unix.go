//go:build unix
// +build unix

package page

import "golang.org/x/sys/unix"

// mappage acquire an anonymous read-write block from the OS. mmap'ed
// pages are page aligned, comfortably beyond api.Granularity.
func mappage(size int) ([]byte, error) {
	prot, flags := unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON
	return unix.Mmap(-1, 0, size, prot, flags)
}

func unmappage(block []byte) error {
	return unix.Munmap(block)
}
