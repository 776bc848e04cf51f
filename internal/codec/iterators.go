package codec

import (
	"iter"

	"github.com/msheby/rogour/internal/rules"
)

// BitsIterator yields every length-n bit vector with exactly k ones, in
// colexicographic order: each step moves the lowest run of ones one place
// up (the run's lower ones drop back to the front), so the sequence can be
// walked without recursion or combination lookup tables.
func BitsIterator(k, n int) iter.Seq[[]int8] {
	return func(yield func([]int8) bool) {
		if k < 0 || n < 0 || k > n {
			return
		}
		if k == 0 {
			yield(make([]int8, n))
			return
		}
		if k == n {
			v := make([]int8, n)
			for i := range v {
				v[i] = 1
			}
			yield(v)
			return
		}

		b := make([]int8, n)
		for i := 0; i < k; i++ {
			b[i] = 1
		}
		if !yield(append([]int8(nil), b...)) {
			return
		}
		for {
			i := 0
			for b[i] == 0 {
				i++
			}
			j := i + 1
			for j < n && b[j] == 1 {
				j++
			}
			if j >= n {
				return
			}
			for d := 0; d < j-i-1; d++ {
				b[i+d] = 0
				b[d] = 1
			}
			b[j-1] = 0
			b[j] = 1
			if !yield(append([]int8(nil), b...)) {
				return
			}
		}
	}
}

// GIterator yields every board with exactly gOff Green men borne off and no
// Red men placed anywhere, covering all legal arrangements of the remaining
// Green men between the private squares, the shared strip, and Green's own
// home.
func GIterator(gOff int) iter.Seq[rules.Board] {
	return func(yield func(rules.Board) bool) {
		gMen := 7 - gOff
		var b rules.Board
		b[14] = int8(gOff)

		for gHome := gMen; gHome >= 0; gHome-- {
			gOnBoard := gMen - gHome
			maxOnMine := gOnBoard
			if maxOnMine > 6 {
				maxOnMine = 6
			}
			for gOnMine := maxOnMine; gOnMine >= 0; gOnMine-- {
				for onStrip := range BitsIterator(gOnBoard-gOnMine, 8) {
					for i := 0; i < 8; i++ {
						b[4+i] = onStrip[i]
					}
					for onMine := range BitsIterator(gOnMine, 6) {
						b[0], b[1], b[2], b[3] = onMine[0], onMine[1], onMine[2], onMine[3]
						b[12], b[13] = onMine[4], onMine[5]
						if !yield(b) {
							return
						}
					}
				}
			}
		}
	}
}

// RIterator yields every board that extends board with exactly rOff Red men
// borne off, placing the remaining Red men on any strip squares board
// leaves empty and in Red's own private squares and home.
func RIterator(board rules.Board, rOff int) iter.Seq[rules.Board] {
	return func(yield func(rules.Board) bool) {
		b := board
		b[21] = int8(rOff)
		rMen := 7 - rOff

		var bStrip [8]int8
		for i := 0; i < 8; i++ {
			bStrip[i] = board[4+i]
		}

		for rHome := rMen; rHome >= 0; rHome-- {
			rOnBoard := rMen - rHome
			maxOnMine := rOnBoard
			if maxOnMine > 6 {
				maxOnMine = 6
			}
			for rOnMine := maxOnMine; rOnMine >= 0; rOnMine-- {
				var onMines [][]int8
				for v := range BitsIterator(rOnMine, 6) {
					onMines = append(onMines, append([]int8(nil), v...))
				}
				for onStrip := range BitsIterator(rOnBoard-rOnMine, 8) {
					conflict := false
					for i := 0; i < 8; i++ {
						if onStrip[i] == 1 && bStrip[i] == 1 {
							conflict = true
							break
						}
					}
					if conflict {
						continue
					}
					for i := 0; i < 8; i++ {
						if onStrip[i] == 1 {
							b[4+i] = -1
						} else {
							b[4+i] = bStrip[i]
						}
					}
					for _, onMine := range onMines {
						b[15], b[16], b[17], b[18] = -onMine[0], -onMine[1], -onMine[2], -onMine[3]
						b[19], b[20] = -onMine[4], -onMine[5]
						if !yield(b) {
							return
						}
					}
				}
			}
		}
	}
}

// PositionsIterator yields every board with exactly gOff Green men and rOff
// Red men borne off: the full (gOff, rOff) stratum of the position space.
func PositionsIterator(gOff, rOff int) iter.Seq[rules.Board] {
	return func(yield func(rules.Board) bool) {
		for b := range GIterator(gOff) {
			for b1 := range RIterator(b, rOff) {
				if !yield(b1) {
					return
				}
			}
		}
	}
}
