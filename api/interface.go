package api

// Space is the owning heap collaborator behind an allocator's slow
// path. It supplies fresh linear regions, triggers collections and
// constructs padding objects. Refill and Collect may block, the
// allocator fast path never calls into Space.
type Space interface {
	// Refill replace the allocator's current region with a fresh one
	// able to fit n bytes at the given alignment. Returns false when
	// no region can be acquired.
	Refill(n, alignment int64, origin Origin) bool

	// Collect trigger a collection cycle, may block. Called by the
	// slow path when Refill cannot satisfy a request.
	Collect()

	// MakeFiller install a self-describing padding object at addr
	// spanning length bytes, so the span stays walkable. Installing a
	// different length at the same address replaces the prior filler.
	MakeFiller(addr Address, length int64)

	// Identity logical name of the space this allocator serves, for
	// diagnostics and dispatch only.
	Identity() string
}

// AllocationObserver is stepped once every StepSize() bytes of
// cumulative allocation on the allocator it is registered with.
type AllocationObserver interface {
	// StepSize byte interval between steps. Must be positive and is
	// re-read after every step, observers may vary it.
	StepSize() int64

	// Step invoked with the allocated object address, the requested
	// size, the aligned size (request plus alignment filler) and the
	// total bytes consumed from the region for this allocation.
	Step(addr Address, size, alignedsize, allocated int64)
}
