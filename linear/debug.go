//go:build debug
// +build debug

package linear

import "unsafe"

import "github.com/bnclabs/goheap/api"

// poison freshly allocated bytes with a recognizable pattern, so
// reads of uninitialized object slots stand out under inspection.
func poison(addr api.Address, size int64) {
	block := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), size)
	for i := range block {
		block[i] = 0xAA
	}
}
