package linear

import "unsafe"

import "github.com/bnclabs/goheap/api"

// Filler objects keep alignment-skipped and unallocated byte ranges
// walkable as well formed objects. Two layouts, mirroring the two
// cases fillers arise from:
//
//	one-word  [ magic|flags ]                       4 bytes
//	extended  [ magic|flags|extbit ][ length ]      8 bytes and up
//
// The first word carries a 24-bit magic, an extended bit and a mark
// bit used by concurrent markers to skip or process the covered
// range. Extended fillers keep their byte length, header included, in
// the second word.
const (
	fillermagic     = uint32(0xF1DBED00)
	fillermagicmask = uint32(0xFFFFFF00)
	fillerextended  = uint32(0x02)
	fillermark      = uint32(0x01)
)

// Fillerminsize smallest expressible filler, one header word.
const Fillerminsize = int64(4)

// MakeFiller install a padding object of length bytes at addr. Zero
// length is a no-op. Lengths must be multiples of 4 and at least
// Fillerminsize, anything else is a programmer error. Installing over
// a prior filler replaces it and clears its mark bit.
func MakeFiller(addr api.Address, length int64) {
	if length == 0 {
		return
	}
	if length < Fillerminsize || length%4 != 0 || length > int64(^uint32(0)) {
		panicerr("filler length %v", length)
	}
	if length == Fillerminsize {
		storeword(addr, fillermagic)
		return
	}
	storeword(addr, fillermagic|fillerextended)
	storeword(addr+4, uint32(length))
}

// IsFiller whether addr holds a filler header.
func IsFiller(addr api.Address) bool {
	return loadword(addr)&fillermagicmask == fillermagic
}

// FillerLength byte length of the filler at addr, header included.
func FillerLength(addr api.Address) int64 {
	word := checkfiller(addr)
	if word&fillerextended == 0 {
		return Fillerminsize
	}
	return int64(loadword(addr + 4))
}

// SetFillerMark toggle the mark bit on the filler at addr, so a
// concurrent tri-color marker either skips the covered range as
// already processed or treats it as processable.
func SetFillerMark(addr api.Address, black bool) {
	word := checkfiller(addr)
	if black {
		storeword(addr, word|fillermark)
	} else {
		storeword(addr, word&^fillermark)
	}
}

// FillerMarked whether the filler at addr is marked black.
func FillerMarked(addr api.Address) bool {
	return checkfiller(addr)&fillermark != 0
}

// WalkRegion iterate [start, end) as a sequence of objects. sizeof
// supplies the byte length of non-filler objects. fn is called with
// each object's address, length and filler-ness, returning false
// stops the walk. Panics when the walk runs past end, which means the
// range was not iterable.
func WalkRegion(
	start, end api.Address,
	sizeof func(addr api.Address) int64,
	fn func(addr api.Address, length int64, filler bool) bool) {

	for addr := start; addr < end; {
		var length int64
		filler := IsFiller(addr)
		if filler {
			length = FillerLength(addr)
		} else {
			length = sizeof(addr)
		}
		if length <= 0 || addr+api.Address(length) > end {
			panicerr("object %v bytes at %x runs past %x", length, addr, end)
		}
		if fn(addr, length, filler) == false {
			return
		}
		addr += api.Address(length)
	}
}

func checkfiller(addr api.Address) uint32 {
	word := loadword(addr)
	if word&fillermagicmask != fillermagic {
		panicerr("no filler at %x", addr)
	}
	return word
}

func loadword(addr api.Address) uint32 {
	return *(*uint32)(unsafe.Pointer(uintptr(addr)))
}

func storeword(addr api.Address, word uint32) {
	*(*uint32)(unsafe.Pointer(uintptr(addr))) = word
}
