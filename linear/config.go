package linear

import s "github.com/prataprc/gosettings"

import "github.com/bnclabs/goheap/api"

// Linear allocator configurable parameters and default settings.
//
// "granularity" (int64, default: api.Granularity)
//
//	Platform allocation granularity. Requested sizes round up to
//	multiples of this and requests at this alignment take the
//	unaligned fast path.
func Defaultsettings() s.Settings {
	return s.Settings{
		"granularity": api.Granularity,
	}
}
