package players

import "testing"

func TestTaxHistoryPushFillsWindow(t *testing.T) {
	var h TaxHistory
	for i, rate := range []int{10, 20, 30} {
		h.Push(rate)
		if h.Len != i+1 {
			t.Fatalf("after %d pushes, Len = %d, want %d", i+1, h.Len, i+1)
		}
	}
	if h.Rates[0] != 10 || h.Rates[1] != 20 || h.Rates[2] != 30 {
		t.Errorf("unexpected rates after fill: %v", h.Rates[:3])
	}
}

func TestTaxHistoryPushDropsOldestOnceFull(t *testing.T) {
	var h TaxHistory
	for _, rate := range []int{1, 2, 3, 4, 5, 6} {
		h.Push(rate)
	}
	if h.Len != 6 {
		t.Fatalf("Len = %d, want 6", h.Len)
	}
	h.Push(7)
	if h.Len != 6 {
		t.Fatalf("Len after overflow push = %d, want 6", h.Len)
	}
	want := [6]int{2, 3, 4, 5, 6, 7}
	if h.Rates != want {
		t.Errorf("Rates = %v, want %v", h.Rates, want)
	}
}
