package solver

import "github.com/msheby/rogour/internal/rules"

// greenPath and redPath give each square's 1-indexed distance along its owner's path,
// shared between Green and Red for the 8 strip squares they travel in
// common.
var greenPath = [22]int{0: 1, 1: 2, 2: 3, 3: 4, 4: 5, 5: 6, 6: 7, 7: 8, 8: 9, 9: 10, 10: 11, 11: 12, 12: 13, 13: 14}
var redPath = [22]int{15: 1, 16: 2, 17: 3, 18: 4, 4: 5, 5: 6, 6: 7, 7: 8, 8: 9, 9: 10, 10: 11, 11: 12, 19: 13, 20: 14}

// totalPips sums, over every man still in play on either side, the number
// of squares left to travel before bearing off. It is only used to order a
// stratum's update list so positions nearer the end converge first; it has
// no effect on the fixed point itself.
func totalPips(b rules.Board) int {
	sum := 0
	for sq, pos := range greenPath {
		if pos == 0 {
			continue
		}
		if b[sq] == 1 {
			sum += 15 - pos
		}
	}
	for sq, pos := range redPath {
		if pos == 0 {
			continue
		}
		if b[sq] == -1 {
			sum += 15 - pos
		}
	}
	return sum
}
