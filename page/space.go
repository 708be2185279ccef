// Package page supplies a minimal page backed space for the linear
// allocation core. It acquires fixed size pages from the OS, one at a
// time, and hands each page to its allocator as a fresh region.
// Collection is outside this package's scope, Collect only records
// the request for the owner to act on. Not thread safe beyond what
// the linear allocator's frontier already guarantees.
package page

import "fmt"
import "unsafe"

import humanize "github.com/dustin/go-humanize"
import s "github.com/prataprc/gosettings"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/linear"

// Space implement api.Space over fixed size pages.
type Space struct {
	name      string
	allocator *linear.Allocator
	pages     [][]byte

	// configuration
	pagesize  int64
	capacity  int64
	setts     s.Settings
	logprefix string

	// statistics
	n_refills  int64
	n_collects int64
}

// NewSpace create a page backed space and its linear allocator.
func NewSpace(name string, setts s.Settings) *Space {
	sp := &Space{name: name}
	sp.logprefix = fmt.Sprintf("PAGE [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	sp.pagesize, sp.capacity = setts.Int64("pagesize"), setts.Int64("capacity")
	if sp.pagesize <= 0 || sp.pagesize%api.Granularity != 0 {
		panic(fmt.Errorf("pagesize %v not a multiple of %v", sp.pagesize, api.Granularity))
	} else if sp.capacity < sp.pagesize {
		panic(fmt.Errorf("capacity %v below pagesize %v", sp.capacity, sp.pagesize))
	} else if sp.capacity > Maxcapacity {
		panic(fmt.Errorf("capacity %v exceeds %v", sp.capacity, Maxcapacity))
	}
	sp.setts = setts
	sp.pages = make([][]byte, 0, sp.capacity/sp.pagesize)

	linsetts := setts.Section("linear").Trim("linear.")
	sp.allocator = linear.NewAllocator(sp, linsetts)

	infof(
		"%v started with %v pages of %v ...\n", sp.logprefix,
		sp.capacity/sp.pagesize, humanize.Bytes(uint64(sp.pagesize)))
	return sp
}

// Allocator the linear allocator served by this space.
func (sp *Space) Allocator() *linear.Allocator {
	return sp.allocator
}

// Refill implement api.Space interface. Finishes the old region with
// a filler over its unused tail, acquires the next page and installs
// it as the allocator's region.
func (sp *Space) Refill(n, alignment int64, origin api.Origin) bool {
	if n+alignment > sp.pagesize {
		return false
	}
	block, err := sp.acquirepage()
	if err != nil || block == nil {
		return false
	}
	sp.allocator.MakeIterable() // leave the old tail walkable

	start := api.Address(uintptr(unsafe.Pointer(&block[0])))
	sp.allocator.ResetRegion(start, start, start+api.Address(sp.pagesize))
	sp.n_refills++
	debugf("%v refill #%v for %v bytes at %v\n", sp.logprefix, sp.n_refills, n, origin)
	return true
}

// Collect implement api.Space interface. Collection cycles are
// layered on by the owner, the request is only recorded here.
func (sp *Space) Collect() {
	sp.n_collects++
	infof("%v collect requested (#%v)\n", sp.logprefix, sp.n_collects)
}

// MakeFiller implement api.Space interface.
func (sp *Space) MakeFiller(addr api.Address, length int64) {
	linear.MakeFiller(addr, length)
}

// Identity implement api.Space interface.
func (sp *Space) Identity() string {
	return sp.name
}

// Info memory accounting for this space.
func (sp *Space) Info() (capacity, heap, overhead int64) {
	self := int64(unsafe.Sizeof(*sp))
	slicesz := int64(cap(sp.pages)) * int64(unsafe.Sizeof([]byte(nil)))
	heap = int64(len(sp.pages)) * sp.pagesize
	return sp.capacity, heap, self + slicesz
}

// Stats for this space and its allocator.
func (sp *Space) Stats() map[string]interface{} {
	stats := sp.allocator.Stats()
	stats["n.refills"] = sp.n_refills
	stats["n.collects"] = sp.n_collects
	stats["n.pages"] = int64(len(sp.pages))
	return stats
}

// Release every page back to the OS. The allocator must not be used
// after release.
func (sp *Space) Release() {
	for _, block := range sp.pages {
		if err := unmappage(block); err != nil {
			errorf("%v unmap: %v\n", sp.logprefix, err)
		}
	}
	sp.pages = nil
	infof("%v released\n", sp.logprefix)
}

func (sp *Space) acquirepage() ([]byte, error) {
	if int64(len(sp.pages)+1)*sp.pagesize > sp.capacity {
		return nil, nil
	}
	block, err := mappage(int(sp.pagesize))
	if err != nil {
		errorf("%v mmap: %v\n", sp.logprefix, err)
		return nil, err
	}
	sp.pages = append(sp.pages, block)
	return block, nil
}
