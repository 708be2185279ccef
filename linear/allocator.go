package linear

import "fmt"
import "sync"

import humanize "github.com/dustin/go-humanize"
import s "github.com/prataprc/gosettings"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/lib"

// Allocator is the mutator facing allocator over one linear region.
// It orchestrates the Region bump cursor, the published Frontier and
// the allocation observers, and delegates to its api.Space on fast
// path exhaustion. One mutator thread owns an Allocator, only the
// Frontier accessors are safe for concurrent readers.
type Allocator struct {
	space    api.Space
	region   Region
	frontier Frontier
	counter  AllocationCounter

	// configuration
	granularity int64
	logprefix   string

	// statistics, updated only by the owning thread
	n_allocations int64
	n_slowpath    int64
	n_fillers     int64
	n_origins     [api.NumOrigins]int64
	h_allocsize   lib.AverageInt64
}

// NewAllocator for the given space. The region starts empty, the
// first allocation goes through the slow path and refills it.
func NewAllocator(space api.Space, setts s.Settings) *Allocator {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	ma := &Allocator{space: space}
	ma.granularity = setts.Int64("granularity")
	if g := ma.granularity; g <= 0 || g&(g-1) != 0 {
		panicerr("granularity %v is not a power of 2", g)
	}
	ma.logprefix = fmt.Sprintf("ALOC [%s]", space.Identity())
	infof("%v started ...\n", ma.logprefix)
	return ma
}

//---- region accessors

// Start of the current region.
func (ma *Allocator) Start() api.Address {
	return ma.region.Start()
}

// Top of the current region, the allocation frontier.
func (ma *Allocator) Top() api.Address {
	return ma.region.Top()
}

// Limit of the current region.
func (ma *Allocator) Limit() api.Address {
	return ma.region.Limit()
}

// Region owned by this allocator, single-writer, background threads
// must go through the Frontier instead.
func (ma *Allocator) Region() *Region {
	return &ma.region
}

//---- frontier, consumed by concurrent marking/sweeping collaborators

// Lock the frontier lock, shared mode snapshots (top, limit) as a
// consistent pair.
func (ma *Allocator) Lock() *sync.RWMutex {
	return ma.frontier.Lock()
}

// OriginalTopAcquire published allocation frontier.
func (ma *Allocator) OriginalTopAcquire() api.Address {
	return ma.frontier.TopAcquire()
}

// OriginalLimitRelaxed published region limit.
func (ma *Allocator) OriginalLimitRelaxed() api.Address {
	return ma.frontier.LimitRelaxed()
}

// AdvanceOriginalTop publish the region's current top for background
// readers without a full region replacement. Published top never
// regresses within one region's lifetime.
func (ma *Allocator) AdvanceOriginalTop() {
	mu := ma.frontier.Lock()
	mu.Lock()
	defer mu.Unlock()

	top := ma.region.Top()
	if ot := ma.frontier.TopAcquire(); top < ot {
		panicerr("top %x below published top %x", top, ot)
	}
	if ol := ma.frontier.LimitRelaxed(); top > ol {
		panicerr("top %x beyond published limit %x", top, ol)
	}
	ma.frontier.PublishTop(top)
}

// ResetRegion replace the region wholesale and republish the frontier
// pair, as one step under the exclusive lock. Stale frontier data
// after a replacement would be unsound for concurrent readers. Used
// by the space on refill.
func (ma *Allocator) ResetRegion(start, top, limit api.Address) {
	mu := ma.frontier.Lock()
	mu.Lock()
	defer mu.Unlock()

	ma.region.Reset(start, top, limit)
	ma.frontier.PublishLimit(limit)
	ma.frontier.PublishTop(top)
}

//---- allocation

// Allocate size bytes at the given alignment. Size rounds up to the
// allocation granularity, alignments beyond the granularity go
// through the aligned path and may consume filler bytes. Returns a
// Failure outcome when neither the fast path nor the space's slow
// path can satisfy the request, never panics for exhaustion.
func (ma *Allocator) Allocate(
	size, alignment int64, origin api.Origin) api.AllocationResult {

	size = api.AlignUp(size, ma.granularity)

	var res api.AllocationResult
	if alignment > ma.granularity {
		res = ma.allocateFastAligned(size, nil, alignment, origin)
	} else {
		res = ma.allocateFastUnaligned(size, origin)
	}
	if res.IsFailure() {
		return ma.allocateSlow(size, alignment, origin)
	}
	return res
}

// AllocateForceAlignmentForTesting take the aligned path regardless
// of the requested alignment, for deterministic verification of the
// alignment and filler logic. Also reports the aligned size, request
// plus filler, consumed from the region.
func (ma *Allocator) AllocateForceAlignmentForTesting(
	size, alignment int64,
	origin api.Origin) (api.AllocationResult, int64) {

	size = api.AlignUp(size, ma.granularity)

	var alignedsize int64
	res := ma.allocateFastAligned(size, &alignedsize, alignment, origin)
	if res.IsFailure() {
		if ma.refill(size, alignment, origin) == false {
			return api.Failure(), 0
		}
		res = ma.allocateFastAligned(size, &alignedsize, alignment, origin)
	}
	return res, alignedsize
}

// allocateFastUnaligned bump top by size. No mutation on failure.
func (ma *Allocator) allocateFastUnaligned(
	size int64, origin api.Origin) api.AllocationResult {

	if ma.region.CanFit(size) == false {
		return api.Failure()
	}
	addr := ma.region.Bump(size)
	poison(addr, size)

	ma.account(origin, size)
	ma.counter.Advance(size)
	ma.counter.Invoke(addr, size, size, size)
	return api.Success(addr)
}

// allocateFastAligned bump top by size plus the filler bytes needed
// to reach alignment, installing a filler object over the skipped
// bytes so the region stays walkable. No mutation on failure. Writes
// the consumed size to alignedsize when non-nil.
func (ma *Allocator) allocateFastAligned(
	size int64, alignedsize *int64, alignment int64,
	origin api.Origin) api.AllocationResult {

	filler := api.FillToAlign(ma.region.Top(), alignment)
	aligned := size + filler
	if ma.region.CanFit(aligned) == false {
		return api.Failure()
	}
	base := ma.region.Bump(aligned)
	if alignedsize != nil {
		*alignedsize = aligned
	}
	addr := base
	if filler > 0 {
		ma.space.MakeFiller(base, filler)
		ma.n_fillers++
		addr = base + api.Address(filler)
	}
	poison(addr, size)

	ma.account(origin, aligned)
	ma.counter.Advance(aligned)
	ma.counter.Invoke(addr, size, aligned, aligned)
	return api.Success(addr)
}

// allocateSlow ask the space for a fresh region, collecting once if
// refill cannot satisfy the request, then retry the fast path once.
// Out-of-memory is the space's to report.
func (ma *Allocator) allocateSlow(
	size, alignment int64, origin api.Origin) api.AllocationResult {

	if ma.refill(size, alignment, origin) == false {
		return api.Failure()
	}
	if alignment > ma.granularity {
		return ma.allocateFastAligned(size, nil, alignment, origin)
	}
	return ma.allocateFastUnaligned(size, origin)
}

func (ma *Allocator) refill(size, alignment int64, origin api.Origin) bool {
	ma.n_slowpath++
	if ma.space.Refill(size, alignment, origin) {
		return true
	}
	ma.space.Collect()
	if ma.space.Refill(size, alignment, origin) {
		return true
	}
	warnf("%v out of memory for %v bytes\n", ma.logprefix, size)
	return false
}

func (ma *Allocator) account(origin api.Origin, consumed int64) {
	ma.n_allocations++
	ma.n_origins[origin]++
	ma.h_allocsize.Add(consumed)
}

//---- observers

// AddObserver step the observer every StepSize() bytes of cumulative
// allocation. Must not race with an in-flight allocation.
func (ma *Allocator) AddObserver(observer api.AllocationObserver) {
	ma.counter.Add(observer)
}

// RemoveObserver unregister a previously added observer.
func (ma *Allocator) RemoveObserver(observer api.AllocationObserver) {
	ma.counter.Remove(observer)
}

// PauseObservers bracket off observer stepping.
func (ma *Allocator) PauseObservers() {
	ma.counter.Pause()
}

// ResumeObservers undo one PauseObservers.
func (ma *Allocator) ResumeObservers() {
	ma.counter.Resume()
}

//---- GC safepoint transitions, idempotent

// MarkStartInitialized record that the region's start holds valid
// content, so concurrent marking may begin scanning from start, and
// publish the frontier up to the current top.
func (ma *Allocator) MarkStartInitialized() {
	ma.region.MoveStartToTop()
	ma.AdvanceOriginalTop()
}

// MakeIterable cover the unallocated tail [top, limit) with a single
// filler object, so the whole region walks as well formed objects.
func (ma *Allocator) MakeIterable() {
	if top, limit := ma.region.Top(), ma.region.Limit(); top < limit {
		ma.space.MakeFiller(top, int64(limit-top))
	}
}

// MarkBlack mark the region's unallocated tail black, a concurrent
// tri-color marker skips it without scanning bytes that are not yet
// real objects.
func (ma *Allocator) MarkBlack() {
	top, limit := ma.region.Top(), ma.region.Limit()
	if top >= limit {
		return
	}
	if IsFiller(top) == false {
		ma.space.MakeFiller(top, int64(limit-top))
	}
	SetFillerMark(top, true)
}

// Unmark the region's unallocated tail, making it processable again.
func (ma *Allocator) Unmark() {
	top, limit := ma.region.Top(), ma.region.Limit()
	if top >= limit {
		return
	}
	if IsFiller(top) {
		SetFillerMark(top, false)
	}
}

//---- statistics

// Stats allocation accounting for this allocator.
func (ma *Allocator) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"n.allocations": ma.n_allocations,
		"n.slowpath":    ma.n_slowpath,
		"n.fillers":     ma.n_fillers,
		"allocsize":     ma.h_allocsize.Stats(),
	}
	for origin := api.Origin(0); origin < api.NumOrigins; origin++ {
		stats["origin."+origin.String()] = ma.n_origins[origin]
	}
	return stats
}

// Logstats dump allocation accounting via the package logger.
func (ma *Allocator) Logstats() {
	fmsg := "%v allocations %v consumed %v slowpath %v fillers %v\n"
	infof(
		fmsg, ma.logprefix, ma.n_allocations,
		humanize.Bytes(uint64(ma.h_allocsize.Sum())),
		ma.n_slowpath, ma.n_fillers)
}
