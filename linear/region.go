package linear

import "github.com/bnclabs/goheap/api"

// Region is the linear allocation area, a contiguous free block
// [start, limit) with a bump cursor at top. start <= top <= limit
// always. A region is owned and mutated by a single mutator thread,
// there is no internal locking, and it is replaced wholesale on
// refill, never patched incrementally.
type Region struct {
	start api.Address
	top   api.Address
	limit api.Address
}

// NewRegion over [start, limit) with the cursor at top.
func NewRegion(start, top, limit api.Address) *Region {
	r := &Region{}
	r.Reset(start, top, limit)
	return r
}

// Start of the region.
func (r *Region) Start() api.Address {
	return r.start
}

// Top the bump cursor, frontier between allocated and free bytes.
func (r *Region) Top() api.Address {
	return r.top
}

// Limit of the region.
func (r *Region) Limit() api.Address {
	return r.limit
}

// TopAddress raw pointer to the cursor word, for compiled call sites
// that bump top inline. This breaks the single-writer discipline of
// the Region interface, such call sites own the consequences.
func (r *Region) TopAddress() *api.Address {
	return &r.top
}

// LimitAddress raw pointer to the limit word, same caveat as
// TopAddress.
func (r *Region) LimitAddress() *api.Address {
	return &r.limit
}

// CanFit whether n more bytes fit below the limit. Pure check, no
// mutation.
func (r *Region) CanFit(n int64) bool {
	return n >= 0 && r.top+api.Address(n) <= r.limit
}

// Bump advance top by n bytes and return the pre-increment address.
// Callers must have verified CanFit(n), violating that is a
// programmer error.
func (r *Region) Bump(n int64) api.Address {
	if r.CanFit(n) == false {
		panicerr("bump(%v) past limit %x, top %x", n, r.limit, r.top)
	}
	addr := r.top
	r.top += api.Address(n)
	return addr
}

// Reset replace the region wholesale, used only by refill.
func (r *Region) Reset(start, top, limit api.Address) {
	if start > top || top > limit {
		panicerr("reset with start %x, top %x, limit %x", start, top, limit)
	}
	r.start, r.top, r.limit = start, top, limit
}

// MoveStartToTop record that [start, top) holds valid content by
// shrinking the region's window to begin at top.
func (r *Region) MoveStartToTop() {
	r.start = r.top
}

// SetLimit lower or restore the limit without touching start or top.
func (r *Region) SetLimit(limit api.Address) {
	if limit < r.top {
		panicerr("limit %x below top %x", limit, r.top)
	}
	r.limit = limit
}

// DecrementTopIfAdjacent undo a bump of n bytes when addr+n is still
// the current top. Returns false when some other allocation slipped
// in between.
func (r *Region) DecrementTopIfAdjacent(addr api.Address, n int64) bool {
	if addr+api.Address(n) != r.top {
		return false
	}
	r.top = addr
	r.start = minaddr(r.start, r.top)
	return true
}

// MergeIfAdjacent extend this region over other when other begins
// exactly at this region's limit. Returns false otherwise.
func (r *Region) MergeIfAdjacent(other *Region) bool {
	if r.limit != other.start {
		return false
	}
	r.limit = other.limit
	return true
}

// Verify the region invariant, panics on violation.
func (r *Region) Verify() {
	if r.start > r.top || r.top > r.limit {
		panicerr("invariant: start %x, top %x, limit %x", r.start, r.top, r.limit)
	}
}

func minaddr(x, y api.Address) api.Address {
	if x < y {
		return x
	}
	return y
}
