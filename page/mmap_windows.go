//go:build windows
// +build windows

package page

// Windows builds keep pages on the Go heap, pinned by the space's
// page list. Heap blocks of page sizes are at least 8 byte aligned.
func mappage(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmappage(block []byte) error {
	return nil
}
