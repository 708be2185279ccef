package api

// Address is a location within heap managed memory.
type Address uintptr

// AllocationResult is the outcome of an allocation attempt, either a
// success carrying the object address or a failure carrying nothing.
// Failure is normal signaling for fast-path exhaustion, callers must
// branch on the tag before touching the address.
type AllocationResult struct {
	addr    Address
	failure bool
}

// Success allocation outcome at addr.
func Success(addr Address) AllocationResult {
	return AllocationResult{addr: addr}
}

// Failure allocation outcome, insufficient space on the fast path.
// Carries no classification, the slow path owns the decision to
// refill, collect or report out-of-memory.
func Failure() AllocationResult {
	return AllocationResult{failure: true}
}

// IsFailure return true when the attempt did not allocate.
func (ar AllocationResult) IsFailure() bool {
	return ar.failure
}

// Address of the allocated object. Reading the address of a failure
// outcome is a programmer error.
func (ar AllocationResult) Address() Address {
	if ar.failure {
		panicerr("failure outcome carries no address")
	}
	return ar.addr
}

// Origin classifies who requested an allocation, for accounting and
// diagnostics only.
type Origin byte

const (
	// OriginRuntime allocation requested by runtime code.
	OriginRuntime Origin = iota

	// OriginGC allocation requested while a collection is running.
	OriginGC

	// OriginGeneratedCode allocation requested by compiled call sites
	// bumping inline.
	OriginGeneratedCode

	// NumOrigins number of origin kinds, for per-origin counters.
	NumOrigins
)

func (origin Origin) String() string {
	switch origin {
	case OriginRuntime:
		return "runtime"
	case OriginGC:
		return "gc"
	case OriginGeneratedCode:
		return "generated"
	}
	panicerr("invalid origin %v", byte(origin))
	return ""
}
