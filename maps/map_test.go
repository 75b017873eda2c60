package maps

import "testing"

func TestInPeacePeriod(t *testing.T) {
	def := Definition{PeaceTurns: 5}
	cases := []struct {
		turn int
		want bool
	}{
		{1, true},
		{5, true},
		{6, false},
		{100, false},
	}
	for _, c := range cases {
		if got := def.InPeacePeriod(c.turn); got != c.want {
			t.Errorf("InPeacePeriod(%d) = %v, want %v", c.turn, got, c.want)
		}
	}
}

func TestInPeacePeriodZeroWindow(t *testing.T) {
	def := Definition{PeaceTurns: 0}
	if def.InPeacePeriod(1) {
		t.Errorf("a zero-length peace window should never gate turn 1")
	}
}
