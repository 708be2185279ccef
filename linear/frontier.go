package linear

import "sync"
import "sync/atomic"

import "github.com/bnclabs/goheap/api"

// Frontier publishes the region's original top and limit for
// concurrent readers. The owning mutator is the sole writer,
// background threads snapshot progress here instead of touching the
// Region.
//
// PublishTop pairs with TopAcquire: a reader observing a published
// top also observes every write made before the matching publish, in
// particular object content up to that top. Go's sync/atomic loads
// and stores are sequentially consistent, which subsumes the
// release/acquire pairing this protocol needs. Limit changes only at
// region replacement, which is serialized by the frontier lock, so a
// relaxed read suffices on its own and the lock is taken in read mode
// only to snapshot (top, limit) as a consistent pair.
type Frontier struct {
	originaltop   uintptr
	originallimit uintptr
	mu            sync.RWMutex
}

// TopAcquire lock-free read of the published top.
func (f *Frontier) TopAcquire() api.Address {
	return api.Address(atomic.LoadUintptr(&f.originaltop))
}

// LimitRelaxed lock-free read of the published limit.
func (f *Frontier) LimitRelaxed() api.Address {
	return api.Address(atomic.LoadUintptr(&f.originallimit))
}

// PublishTop store a new top for background readers. Callers hold the
// frontier lock exclusively, the store itself carries the release
// semantics.
func (f *Frontier) PublishTop(addr api.Address) {
	atomic.StoreUintptr(&f.originaltop, uintptr(addr))
}

// PublishLimit store a new limit, only at region replacement
// boundaries, under the exclusive lock.
func (f *Frontier) PublishLimit(addr api.Address) {
	atomic.StoreUintptr(&f.originallimit, uintptr(addr))
}

// Lock the multi-reader single-writer lock protecting the
// (top, limit) pair. Readers take RLock to snapshot both as a
// consistent pair, advancing top or replacing the region takes Lock.
func (f *Frontier) Lock() *sync.RWMutex {
	return &f.mu
}
