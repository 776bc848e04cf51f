package combinatorics

import "testing"

func TestTotalPositions(t *testing.T) {
	if TotalPositions != 137_913_936 {
		t.Fatalf("TotalPositions = %d, want 137913936", TotalPositions)
	}
}

func TestBinomEdges(t *testing.T) {
	cases := []struct {
		n, k int
		want int64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{5, 6, 0},
		{5, -1, 0},
		{6, 3, 20},
		{8, 4, 70},
	}
	for _, c := range cases {
		if got := Binom(c.n, c.k); got != c.want {
			t.Errorf("Binom(%d,%d) = %d, want %d", c.n, c.k, got, c.want)
		}
	}
}

func TestPositionsOnBoardSymmetric(t *testing.T) {
	for m := 0; m <= 7; m++ {
		for n := 0; n <= 7; n++ {
			if PositionsOnBoard(m, n) != PositionsOnBoard(n, m) {
				t.Errorf("PositionsOnBoard(%d,%d) != PositionsOnBoard(%d,%d)", m, n, n, m)
			}
		}
	}
}

func TestPositionsOnBoardZero(t *testing.T) {
	if got := PositionsOnBoard(0, 0); got != 1 {
		t.Errorf("PositionsOnBoard(0,0) = %d, want 1", got)
	}
}

func TestPositionsOffSumsToTotal(t *testing.T) {
	var sum int64
	for g := 0; g <= 7; g++ {
		for r := 0; r <= 7; r++ {
			sum += PositionsOff(g, r)
		}
	}
	if sum != TotalPositions {
		t.Fatalf("sum of PositionsOff = %d, want %d", sum, TotalPositions)
	}
}

func TestPartialSumsMonotonic(t *testing.T) {
	ps := PartialSums(6, 6)
	for i := 1; i < len(ps); i++ {
		if ps[i] < ps[i-1] {
			t.Fatalf("PartialSums not monotonic at %d: %v", i, ps)
		}
	}
	if ps[len(ps)-1] != PositionsOnBoard(6, 6) {
		t.Fatalf("PartialSums last entry = %d, want PositionsOnBoard(6,6) = %d", ps[len(ps)-1], PositionsOnBoard(6, 6))
	}
}
