package api

import "testing"

func TestAlignUp(t *testing.T) {
	testcases := [][3]int64{
		{0, 8, 0}, {1, 8, 8}, {8, 8, 8}, {9, 8, 16},
		{15, 8, 16}, {16, 8, 16}, {20, 16, 32}, {7, 1, 7},
	}
	for _, tc := range testcases {
		if x := AlignUp(tc[0], tc[1]); x != tc[2] {
			t.Errorf("AlignUp(%v, %v) expected %v, got %v", tc[0], tc[1], tc[2], x)
		}
	}

	// panic cases
	for _, fn := range []func(){
		func() { AlignUp(8, 0) },
		func() { AlignUp(8, 12) },
		func() { AlignUp(-1, 8) },
		func() { AlignUp(Maxallocsize+1, 8) },
	} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic")
				}
			}()
			fn()
		}()
	}
}

func TestFillToAlign(t *testing.T) {
	testcases := [][3]int64{
		{0, 8, 0}, {4, 8, 4}, {8, 8, 0}, {12, 16, 4}, {17, 16, 15},
	}
	for _, tc := range testcases {
		if x := FillToAlign(Address(tc[0]), tc[1]); x != tc[2] {
			t.Errorf(
				"FillToAlign(%v, %v) expected %v, got %v",
				tc[0], tc[1], tc[2], x)
		}
	}
}

func TestIsAligned(t *testing.T) {
	if IsAligned(Address(12), 8) {
		t.Errorf("12 is not 8 byte aligned")
	}
	if IsAligned(Address(16), 8) == false {
		t.Errorf("16 is 8 byte aligned")
	}
}
