package page

import "testing"

import s "github.com/prataprc/gosettings"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/linear"

func TestNewSpace(t *testing.T) {
	sp := NewSpace("new", s.Settings{
		"pagesize": int64(4096),
		"capacity": int64(4 * 4096),
	})
	if capacity, heap, _ := sp.Info(); capacity != 4*4096 {
		t.Errorf("expected capacity %v, got %v", 4*4096, capacity)
	} else if heap != 0 {
		t.Errorf("expected no pages yet, got %v bytes", heap)
	}
	sp.Release()

	// panic cases
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic")
			}
		}()
		NewSpace("bad", s.Settings{"pagesize": int64(100)})
	}()
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic")
			}
		}()
		NewSpace("bad", s.Settings{
			"pagesize": int64(4096), "capacity": int64(1024),
		})
	}()
}

func TestSpaceRefill(t *testing.T) {
	sp := NewSpace("refill", s.Settings{
		"pagesize": int64(4096),
		"capacity": int64(2 * 4096),
	})
	defer sp.Release()

	ma := sp.Allocator()

	// drain the first page.
	for i := 0; i < 4096/64; i++ {
		if res := ma.Allocate(64, api.Granularity, api.OriginRuntime); res.IsFailure() {
			t.Fatalf("unexpected failure at %v", i)
		}
	}
	firststart := ma.Start()
	if _, heap, _ := sp.Info(); heap != 4096 {
		t.Errorf("expected 1 page acquired, got %v bytes", heap)
	}

	// roll over to the second page.
	res := ma.Allocate(64, api.Granularity, api.OriginRuntime)
	if res.IsFailure() {
		t.Fatalf("unexpected failure")
	} else if ma.Start() == firststart {
		t.Errorf("expected a fresh region")
	} else if api.IsAligned(res.Address(), api.Granularity) == false {
		t.Errorf("address %x not %v byte aligned", res.Address(), api.Granularity)
	}

	// the drained first page was left fully iterable, a region that
	// was drained to its limit has no tail to fill.
	stats := sp.Stats()
	if x := stats["n.refills"].(int64); x != 2 {
		t.Errorf("expected 2 refills, got %v", x)
	}

	// capacity exhausted, collect is recorded, allocation fails.
	for i := 0; i < 4096/64; i++ {
		ma.Allocate(64, api.Granularity, api.OriginRuntime)
	}
	res = ma.Allocate(64, api.Granularity, api.OriginRuntime)
	if res.IsFailure() == false {
		t.Errorf("expected failure")
	}
	stats = sp.Stats()
	if x := stats["n.collects"].(int64); x < 1 {
		t.Errorf("expected a collect request, got %v", x)
	}

	// oversized requests fail without consuming pages.
	res = ma.Allocate(8192, api.Granularity, api.OriginRuntime)
	if res.IsFailure() == false {
		t.Errorf("expected failure")
	}
	if x := sp.Stats()["n.pages"].(int64); x != 2 {
		t.Errorf("expected 2 pages, got %v", x)
	}
}

func TestSpaceIterableTail(t *testing.T) {
	sp := NewSpace("iterable", s.Settings{
		"pagesize": int64(4096),
		"capacity": int64(2 * 4096),
	})
	defer sp.Release()

	ma := sp.Allocator()

	// leave a tail on the first page, then force a rollover with a
	// request the tail cannot fit.
	if res := ma.Allocate(4000, api.Granularity, api.OriginRuntime); res.IsFailure() {
		t.Fatalf("unexpected failure")
	}
	tail := ma.Top()
	if res := ma.Allocate(1024, api.Granularity, api.OriginRuntime); res.IsFailure() {
		t.Fatalf("unexpected failure")
	}

	// the old tail now walks as one filler object.
	if linear.IsFiller(tail) == false {
		t.Errorf("expected filler at %x", tail)
	} else if length := linear.FillerLength(tail); length != 4096-4000 {
		t.Errorf("expected filler length %v, got %v", 4096-4000, length)
	}
}

func TestSpaceAligned(t *testing.T) {
	sp := NewSpace("aligned", s.Settings{
		"pagesize": int64(4096),
		"capacity": int64(4096),
	})
	defer sp.Release()

	ma := sp.Allocator()
	res := ma.Allocate(64, 512, api.OriginRuntime)
	if res.IsFailure() {
		t.Fatalf("unexpected failure")
	} else if api.IsAligned(res.Address(), 512) == false {
		t.Errorf("address %x not 512 byte aligned", res.Address())
	}
}
