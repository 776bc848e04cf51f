package rules

// Move is one of Green's successor boards for a given die roll.
//
// ExtraTurn is true when the landing square is a rosette and Board is
// returned in Green's own perspective (the same side rolls again); it is
// false when the turn passes and Board has already been reversed so the
// next caller can always treat Green as on-move.
type Move struct {
	Board     Board
	ExtraTurn bool
}

// AllActualMoves returns every distinct successor of b for Green given pips.
// The returned slice is empty iff Green has no legal move; it panics if b is
// already GameOver or pips is outside 0..4, since both are caller errors.
//
// Move ordering follows source-square order: entry first (if legal), then
// on-board squares ascending by index.
func AllActualMoves(b Board, pips int) []Move {
	if GameOver(b) {
		panic("rules: AllActualMoves called on a finished board")
	}
	if pips < 0 || pips > 4 {
		panic("rules: pips out of range 0..4")
	}
	if pips == 0 {
		return nil
	}

	gOnBoard := countEq(b[0:14], 1)
	totPiecesMe := 7 - int(b[greenOff])
	atHome := totPiecesMe - gOnBoard

	var moves []Move
	if atHome > 0 {
		to := pips - 1
		if b[to] == 0 {
			nb := b
			nb[to] = 1
			moves = append(moves, Move{Board: nb, ExtraTurn: rosettes[to]})
		}
	}
	for i := 0; i < 14; i++ {
		if b[i] != 1 {
			continue
		}
		to := i + pips
		if to < 14 && b[to] != 1 {
			if b[to] == 0 || to != safeSquare {
				nb := b
				nb[i] = 0
				nb[to] = 1
				moves = append(moves, Move{Board: nb, ExtraTurn: rosettes[to]})
			}
		} else if to == 14 {
			nb := b
			nb[i] = 0
			nb[greenOff]++
			moves = append(moves, Move{Board: nb, ExtraTurn: false})
		}
	}

	for k, m := range moves {
		if !m.ExtraTurn {
			moves[k].Board = ReverseBoard(m.Board)
		}
	}
	return moves
}

// AllMoves is AllActualMoves, except that an empty result (no legal move, or
// pips == 0) is replaced by the single pass move: the board reversed, with
// no extra turn.
func AllMoves(b Board, pips int) []Move {
	if moves := AllActualMoves(b, pips); len(moves) > 0 {
		return moves
	}
	return []Move{{Board: ReverseBoard(b), ExtraTurn: false}}
}
