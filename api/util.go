package api

import "fmt"

// AlignUp round n up to the next multiple of align. Align should be a
// positive power of two, n should be within [0, Maxallocsize].
func AlignUp(n, align int64) int64 {
	checkalign(align)
	if n < 0 || n > Maxallocsize {
		panicerr("size %v out of range", n)
	}
	return (n + align - 1) &^ (align - 1)
}

// FillToAlign filler bytes needed from addr to reach align.
func FillToAlign(addr Address, align int64) int64 {
	checkalign(align)
	mask := Address(align - 1)
	if off := addr & mask; off != 0 {
		return int64(Address(align) - off)
	}
	return 0
}

// IsAligned whether addr is a multiple of align.
func IsAligned(addr Address, align int64) bool {
	checkalign(align)
	return addr&Address(align-1) == 0
}

func checkalign(align int64) {
	if align <= 0 || align&(align-1) != 0 {
		panicerr("alignment %v is not a power of 2", align)
	}
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
