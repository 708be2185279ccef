package linear

import "github.com/bnclabs/goheap/api"

// AllocationCounter tracks a set of byte-interval observers for one
// allocator. Per observer it keeps the bytes remaining until the next
// step. Not thread safe, mutating the set must not race with an
// in-flight allocation on the same allocator.
type AllocationCounter struct {
	observers []observerstep
	paused    int
}

type observerstep struct {
	observer  api.AllocationObserver
	remaining int64
}

// Add an observer, its first step fires after StepSize() bytes.
func (ac *AllocationCounter) Add(observer api.AllocationObserver) {
	step := observer.StepSize()
	if step <= 0 {
		panicerr("observer step size %v", step)
	}
	ac.observers = append(ac.observers, observerstep{observer, step})
}

// Remove a registered observer, removing an unknown observer is a
// programmer error.
func (ac *AllocationCounter) Remove(observer api.AllocationObserver) {
	for i := range ac.observers {
		if ac.observers[i].observer == observer {
			copy(ac.observers[i:], ac.observers[i+1:])
			ac.observers = ac.observers[:len(ac.observers)-1]
			return
		}
	}
	panicerr("observer not registered")
}

// Count registered observers.
func (ac *AllocationCounter) Count() int {
	return len(ac.observers)
}

// Pause stepping. Pause/Resume bracket spans where no stepping must
// occur, no allocation should happen inside the span if its step
// accounting matters.
func (ac *AllocationCounter) Pause() {
	ac.paused++
}

// Resume stepping, resuming without a matching pause is a programmer
// error.
func (ac *AllocationCounter) Resume() {
	if ac.paused == 0 {
		panicerr("resume without pause")
	}
	ac.paused--
}

// IsPaused whether stepping is currently bracketed off.
func (ac *AllocationCounter) IsPaused() bool {
	return ac.paused > 0
}

// Advance every counter by the bytes just consumed from the region.
func (ac *AllocationCounter) Advance(allocated int64) {
	if ac.paused > 0 {
		return
	}
	for i := range ac.observers {
		ac.observers[i].remaining -= allocated
	}
}

// Invoke fire every observer whose counter is spent and recompute its
// next boundary. The carry loop keeps an observer with step S firing
// exactly floor(N/S) times after N cumulative bytes.
func (ac *AllocationCounter) Invoke(
	addr api.Address, size, alignedsize, allocated int64) {

	if ac.paused > 0 {
		return
	}
	for i := range ac.observers {
		st := &ac.observers[i]
		for st.remaining <= 0 {
			st.observer.Step(addr, size, alignedsize, allocated)
			step := st.observer.StepSize()
			if step <= 0 {
				panicerr("observer step size %v", step)
			}
			st.remaining += step
		}
	}
}
