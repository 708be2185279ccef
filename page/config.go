package page

import sigar "github.com/cloudfoundry/gosigar"
import s "github.com/prataprc/gosettings"

import "github.com/bnclabs/goheap/api"

// Maxcapacity maximum memory a single space will hand out.
const Maxcapacity = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Page space configurable parameters and default settings.
//
// "pagesize" (int64, default: 262144)
//
//	Size of each page handed to the linear allocator as a region.
//	Must be a multiple of api.Granularity.
//
// "capacity" (int64, default: 1% of free RAM)
//
//	Maximum memory, in pagesize multiples, this space will acquire
//	from the OS. Refill fails once it is exhausted.
//
// "linear.granularity" (int64, default: api.Granularity)
//
//	Forwarded to the linear allocator serving this space.
func Defaultsettings() s.Settings {
	pagesize := int64(256 * 1024)
	_, _, free := getsysmem()
	capacity := (int64(free) / 100) &^ (pagesize - 1)
	if capacity < pagesize*16 {
		capacity = pagesize * 16
	}
	return s.Settings{
		"pagesize":           pagesize,
		"capacity":           capacity,
		"linear.granularity": api.Granularity,
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
