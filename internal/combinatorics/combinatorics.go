// Package combinatorics provides the binomial coefficients and stratum-size
// counts that the codec and solver use to lay out the ROGOUR position space.
package combinatorics

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// maxN bounds the binomial table; no ROGOUR computation needs C(n,k) for n >= maxN.
const maxN = 20

// binomTable is filled by its initializer rather than in init(), so it is
// ready before TotalPositions (which depends on it) is computed.
var binomTable = buildBinomTable()

func buildBinomTable() [maxN][maxN]int64 {
	var t [maxN][maxN]int64
	for n := 0; n < maxN; n++ {
		for k := 0; k <= n; k++ {
			t[n][k] = int64(combin.Binomial(n, k))
		}
	}
	return t
}

func init() {
	if TotalPositions != 137_913_936 {
		panic(fmt.Sprintf("combinatorics: TotalPositions = %d, want 137913936", TotalPositions))
	}
}

// Binom returns C(n, k), the number of k-subsets of an n-set. Returns 0 for
// k < 0, k > n, or n < 0, matching the convention used throughout the codec.
func Binom(n, k int) int64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	if n >= maxN || k >= maxN {
		panic(fmt.Sprintf("combinatorics: Binom(%d, %d) out of precomputed range", n, k))
	}
	return binomTable[n][k]
}

// PositionsOnBoard returns the number of ways to place m Green and n Red men
// on the 20-square playing surface, honoring square-occupancy conflicts.
//
//	PositionsOnBoard(m,n) = Σ_{m1=0..min(m,6)} C(6,m1) · C(8,m−m1) · C(14−(m−m1), n)
func PositionsOnBoard(m, n int) int64 {
	var total int64
	for m1 := 0; m1 <= min(m, 6); m1++ {
		m2 := m - m1
		total += Binom(6, m1) * Binom(8, m2) * Binom(14-m2, n)
	}
	return total
}

// PositionsOff returns the number of boards with exactly gOff/rOff pieces
// borne off by Green/Red respectively.
func PositionsOff(gOff, rOff int) int64 {
	var total int64
	gAvail := 7 - gOff
	rAvail := 7 - rOff
	for gHome := 0; gHome <= gAvail; gHome++ {
		gOnBoard := gAvail - gHome
		for rHome := 0; rHome <= rAvail; rHome++ {
			rOnBoard := rAvail - rHome
			total += PositionsOnBoard(gOnBoard, rOnBoard)
		}
	}
	return total
}

// TotalPositions is the size of the whole ROGOUR position space: the sum of
// PositionsOff over every (gOff, rOff) pair in [0,7]x[0,7].
var TotalPositions = computeTotalPositions()

func computeTotalPositions() int64 {
	var total int64
	for g := 0; g <= 7; g++ {
		for r := 0; r <= 7; r++ {
			total += PositionsOff(g, r)
		}
	}
	return total
}

// PartialSums returns the cumulative sums, over m = 0..min(gMen,6), of the
// term C(6,m)·C(8,gMen−m)·C(14−(gMen−m),rMen). ps[0] is always 0 and
// ps[len(ps)-1] equals PositionsOnBoard(gMen, rMen); ps has len min(gMen,6)+2
// entries.
func PartialSums(gMen, rMen int) []int64 {
	limit := min(gMen, 6)
	ps := make([]int64, limit+2)
	var total int64
	for m1 := 0; m1 <= limit; m1++ {
		m2 := gMen - m1
		total += Binom(6, m1) * Binom(8, m2) * Binom(14-m2, rMen)
		ps[m1+1] = total
	}
	return ps
}
