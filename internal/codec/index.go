package codec

import (
	"fmt"
	"sort"

	"github.com/msheby/rogour/internal/combinatorics"
	"github.com/msheby/rogour/internal/rules"
)

// stratum identifies one (gOff, rOff, gHome, rHome) block of the index space.
type stratum struct {
	gOff, rOff, gHome, rHome int
}

var (
	blockStarts      []int64   // strictly increasing, one per stratum, in generation order
	blockStrata      []stratum // parallel to blockStarts
	startOffset      [8][8][8][8]int64
	partialSumsCache = map[[2]int][]int64{}
)

func init() {
	for gOff := 0; gOff < 8; gOff++ {
		for rOff := 0; rOff < 8; rOff++ {
			for gHome := 0; gHome <= 7-gOff; gHome++ {
				for rHome := 0; rHome <= 7-rOff; rHome++ {
					start := startPoint(gOff, rOff, gHome, rHome)
					startOffset[gOff][rOff][gHome][rHome] = start
					blockStarts = append(blockStarts, start)
					blockStrata = append(blockStrata, stratum{gOff, rOff, gHome, rHome})
				}
			}
		}
	}
	for i := 1; i < len(blockStarts); i++ {
		if blockStarts[i] <= blockStarts[i-1] {
			panic(fmt.Sprintf("codec: block start table not strictly increasing at %d", i))
		}
	}
	last := blockStarts[len(blockStarts)-1]
	lastStratum := blockStrata[len(blockStrata)-1]
	lastSize := combinatorics.PositionsOnBoard(
		7-(lastStratum.gOff+lastStratum.gHome),
		7-(lastStratum.rOff+lastStratum.rHome),
	)
	if want := combinatorics.TotalPositions; last+lastSize != want {
		panic(fmt.Sprintf("codec: block starts do not sum to TotalPositions: %d+%d != %d", last, lastSize, want))
	}
}

// startPoint computes the starting dense index of the (gOff, rOff, gHome,
// rHome) block: the count of all positions in earlier (gOff, rOff) strata,
// plus the count of all (gHome', rHome') sub-blocks before this one within
// the current stratum.
func startPoint(gOff, rOff, gHome, rHome int) int64 {
	var n int64
	for i := 0; i < gOff; i++ {
		for j := 0; j < 8; j++ {
			n += combinatorics.PositionsOff(i, j)
		}
	}
	for j := 0; j < rOff; j++ {
		n += combinatorics.PositionsOff(gOff, j)
	}

	var n1 int64
	for k := 0; k < gHome; k++ {
		for l := 0; l <= 7-rOff; l++ {
			g, r := 7-(k+gOff), 7-(l+rOff)
			n1 += combinatorics.PositionsOnBoard(g, r)
		}
	}
	for l := 0; l < rHome; l++ {
		g, r := 7-(gHome+gOff), 7-(l+rOff)
		n1 += combinatorics.PositionsOnBoard(g, r)
	}
	return n + n1
}

func partialSums(gMen, rMen int) []int64 {
	key := [2]int{gMen, rMen}
	if ps, ok := partialSumsCache[key]; ok {
		return ps
	}
	ps := combinatorics.PartialSums(gMen, rMen)
	partialSumsCache[key] = ps
	return ps
}

// rankBits returns the combinatorial rank of bits (a subset of an N-set
// with popcount k, the standard C(N-i-1, k_remaining) ranking).
func rankBits(bits []bool) int64 {
	k := 0
	for _, b := range bits {
		if b {
			k++
		}
	}
	n := len(bits)
	var idx int64
	for _, b := range bits {
		if b {
			idx += combinatorics.Binom(n-1, k)
			k--
		}
		n--
	}
	return idx
}

// unrankBits is the inverse of rankBits: given a rank, popcount k and
// length n, reconstructs the bit vector.
func unrankBits(idx int64, k, n int) []bool {
	bits := make([]bool, n)
	j := 0
	for n > 0 {
		bnk := combinatorics.Binom(n-1, k)
		if idx >= bnk {
			bits[j] = true
			idx -= bnk
			k--
		}
		n--
		j++
	}
	return bits
}

// BoardToIndex maps a valid board to its dense index in [0, TotalPositions).
func BoardToIndex(b rules.Board) (int64, error) {
	gOff := int(b[14])
	rOff := int(b[21])

	gSafe := make([]bool, 6)
	m := 0
	for i, sq := range greenPrivates {
		if b[sq] == 1 {
			gSafe[i] = true
			m++
		}
	}
	partSafeG := rankBits(gSafe)

	gStripBits := make([]bool, 8)
	gStripOnes := 0
	for i := 0; i < 8; i++ {
		if b[4+i] == 1 {
			gStripBits[i] = true
			gStripOnes++
		}
	}
	gStrip := rankBits(gStripBits)
	gMen := gStripOnes + m

	var redBits []bool
	for _, sq := range [...]int{15, 16, 17, 18} {
		redBits = append(redBits, b[sq] == -1)
	}
	for i := 0; i < 8; i++ {
		if b[4+i] == 1 {
			continue
		}
		redBits = append(redBits, b[4+i] == -1)
	}
	for _, sq := range [...]int{19, 20} {
		redBits = append(redBits, b[sq] == -1)
	}
	partR := rankBits(redBits)
	rMen := 0
	for _, v := range redBits {
		if v {
			rMen++
		}
	}

	gHome, rHome := 7-(gMen+gOff), 7-(rMen+rOff)
	if gHome < 0 || gHome > 7 || rHome < 0 || rHome > 7 {
		return 0, fmt.Errorf("%w: derived home counts (%d,%d) out of range", ErrInvalidIndex, gHome, rHome)
	}
	i0 := startOffset[gOff][rOff][gHome][rHome]

	ps := partialSums(gMen, rMen)
	if m+1 >= len(ps) {
		return 0, fmt.Errorf("%w: inner rank m=%d out of range for gMen=%d", ErrInvalidIndex, m, gMen)
	}
	i1 := ps[m]

	remaining := 14 - (gMen - m)
	i2 := partSafeG*combinatorics.Binom(8, gMen-m) + gStrip
	i3 := i2*combinatorics.Binom(remaining, rMen) + partR

	return i0 + i1 + i3, nil
}

// IndexToBoard is the inverse of BoardToIndex.
func IndexToBoard(index int64) (rules.Board, error) {
	if index < 0 || index >= combinatorics.TotalPositions {
		return rules.Board{}, fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidIndex, index, combinatorics.TotalPositions)
	}

	blockIdx := sort.Search(len(blockStarts), func(i int) bool { return blockStarts[i] > index }) - 1
	if blockIdx < 0 {
		return rules.Board{}, fmt.Errorf("%w: index %d precedes first block", ErrInvalidIndex, index)
	}
	st := blockStrata[blockIdx]
	offset := index - blockStarts[blockIdx]

	gMen := 7 - (st.gOff + st.gHome)
	rMen := 7 - (st.rOff + st.rHome)
	ps := partialSums(gMen, rMen)

	m := 0
	for m+1 < len(ps) && !(ps[m] <= offset && offset < ps[m+1]) {
		m++
	}
	if m+1 >= len(ps) || !(ps[m] <= offset && offset < ps[m+1]) {
		return rules.Board{}, fmt.Errorf("%w: index %d does not fall within any inner rank for gMen=%d", ErrInvalidIndex, index, gMen)
	}
	offset -= ps[m]

	remaining := 14 - (gMen - m)
	u := combinatorics.Binom(remaining, rMen)
	i2 := offset / u
	partR := offset - i2*u
	u2 := combinatorics.Binom(8, gMen-m)
	partSafeG := i2 / u2
	gStrip := i2 - u2*partSafeG

	gSafe := unrankBits(partSafeG, m, 6)
	mid := unrankBits(gStrip, gMen-m, 8)
	other := unrankBits(partR, rMen, remaining)

	var b rules.Board
	b[14] = int8(st.gOff)
	b[21] = int8(st.rOff)
	for i, sq := range greenPrivates {
		if gSafe[i] {
			b[sq] = 1
		}
	}
	for i := 0; i < 8; i++ {
		if mid[i] {
			b[4+i] = 1
		}
	}
	for i, sq := range [...]int{15, 16, 17, 18} {
		if other[i] {
			b[sq] = -1
		}
	}
	oi := 4
	for k := 4; k < 12; k++ {
		if b[k] == 0 {
			if other[oi] {
				b[k] = -1
			}
			oi++
		}
	}
	for i, sq := range [...]int{19, 20} {
		if other[oi+i] {
			b[sq] = -1
		}
	}

	return b, nil
}
