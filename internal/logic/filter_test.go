package logic

import "testing"

func TestFilterZeroValue(t *testing.T) {
	var f Filter
	if f.Sum() != 0 {
		t.Errorf("expected zero sum, got %d", f.Sum())
	}
	if f.Mean() != 0 {
		t.Errorf("expected zero mean, got %d", f.Mean())
	}
}

func TestFilterMatchesReferenceWindow(t *testing.T) {
	var f Filter
	var pushed []uint16

	// 100 pushes of a deterministic 10-bit sequence, well past the window size.
	for i := 0; i < 100; i++ {
		sample := uint16((i*37 + 11) % 1024)
		pushed = append(pushed, sample)
		got := f.Push(sample)

		var want uint32
		start := len(pushed) - FilterSize
		if start < 0 {
			start = 0
		}
		for _, s := range pushed[start:] {
			want += uint32(s)
		}

		if f.Sum() != want {
			t.Fatalf("push %d: sum %d, want %d", i, f.Sum(), want)
		}
		if got != uint16(want>>5) {
			t.Fatalf("push %d: mean %d, want %d", i, got, want>>5)
		}
	}
}

func TestFilterSteadyState(t *testing.T) {
	var f Filter
	var got uint16
	for i := 0; i < FilterSize; i++ {
		got = f.Push(100)
	}
	if got != 100 {
		t.Errorf("expected mean 100 after a full window, got %d", got)
	}

	// Half the window replaced with 200 -> mean 150.
	for i := 0; i < FilterSize/2; i++ {
		got = f.Push(200)
	}
	if got != 150 {
		t.Errorf("expected mean 150, got %d", got)
	}
}

func TestFilterNoOverflowAtFullScale(t *testing.T) {
	var f Filter
	var got uint16
	for i := 0; i < 3*FilterSize; i++ {
		got = f.Push(0xFFFF)
	}
	if f.Sum() != 32*0xFFFF {
		t.Errorf("expected sum %d, got %d", 32*0xFFFF, f.Sum())
	}
	if got != 0xFFFF {
		t.Errorf("expected mean 0xFFFF, got %#x", got)
	}
}
