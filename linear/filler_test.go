package linear

import "runtime"
import "testing"
import "unsafe"

import "github.com/bnclabs/goheap/api"

func testblock(size int) ([]byte, api.Address) {
	block := make([]byte, size+64)
	raw := uintptr(unsafe.Pointer(&block[0]))
	base := api.Address((raw + 63) &^ 63)
	return block, base
}

func TestMakeFiller(t *testing.T) {
	block, base := testblock(256)
	defer runtime.KeepAlive(block)

	// one-word filler.
	MakeFiller(base, 4)
	if IsFiller(base) == false {
		t.Errorf("expected filler at %x", base)
	} else if length := FillerLength(base); length != 4 {
		t.Errorf("expected length 4, got %v", length)
	}

	// extended filler, reinstall over the same address replaces.
	MakeFiller(base, 128)
	if length := FillerLength(base); length != 128 {
		t.Errorf("expected length 128, got %v", length)
	}
	MakeFiller(base, 12)
	if length := FillerLength(base); length != 12 {
		t.Errorf("expected length 12, got %v", length)
	}

	// zero length is a no-op.
	MakeFiller(base+32, 0)

	// panic cases
	for _, length := range []int64{1, 2, 3, 5, 6, -4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for length %v", length)
				}
			}()
			MakeFiller(base, length)
		}()
	}
}

func TestFillerMark(t *testing.T) {
	block, base := testblock(256)
	defer runtime.KeepAlive(block)

	MakeFiller(base, 64)
	if FillerMarked(base) {
		t.Errorf("fresh filler must be unmarked")
	}
	SetFillerMark(base, true)
	if FillerMarked(base) == false {
		t.Errorf("expected marked filler")
	} else if length := FillerLength(base); length != 64 {
		t.Errorf("mark clobbered length, got %v", length)
	}
	SetFillerMark(base, false)
	if FillerMarked(base) {
		t.Errorf("expected unmarked filler")
	}

	// reinstall clears the mark.
	SetFillerMark(base, true)
	MakeFiller(base, 64)
	if FillerMarked(base) {
		t.Errorf("reinstall must clear the mark")
	}

	// panic case
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic")
			}
		}()
		SetFillerMark(base+128, true)
	}()
}

func TestWalkRegion(t *testing.T) {
	block, base := testblock(256)
	defer runtime.KeepAlive(block)

	// lay out object(16), filler(8), object(32), filler(200-56).
	objsize := map[api.Address]int64{base: 16, base + 24: 32}
	MakeFiller(base+16, 8)
	MakeFiller(base+56, 200-56)

	sizeof := func(addr api.Address) int64 {
		return objsize[addr]
	}
	var addrs []api.Address
	var fillers int
	WalkRegion(base, base+200, sizeof,
		func(addr api.Address, length int64, filler bool) bool {
			addrs = append(addrs, addr)
			if filler {
				fillers++
			}
			return true
		})
	if len(addrs) != 4 {
		t.Errorf("expected 4 objects, got %v", len(addrs))
	} else if fillers != 2 {
		t.Errorf("expected 2 fillers, got %v", fillers)
	} else if addrs[3] != base+56 {
		t.Errorf("expected tail filler at %x, got %x", base+56, addrs[3])
	}

	// early stop.
	count := 0
	WalkRegion(base, base+200, sizeof,
		func(addr api.Address, length int64, filler bool) bool {
			count++
			return count < 2
		})
	if count != 2 {
		t.Errorf("expected walk to stop at 2, got %v", count)
	}

	// a gap of unknown content is not iterable.
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic")
			}
		}()
		WalkRegion(base+16, base+200, func(api.Address) int64 { return 0 },
			func(api.Address, int64, bool) bool { return true })
	}()
}
