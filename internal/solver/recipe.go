package solver

import (
	"github.com/msheby/rogour/internal/codec"
	"github.com/msheby/rogour/internal/rules"
)

// diceWeights is the binomial weight of each pip total over four fair
// binary dice, indexed by pips (0..4), summing to 16.
var diceWeights = [5]float64{1, 4, 6, 4, 1}

// successors partitions one die roll's candidate moves by whether Green
// keeps the turn (extra, valued directly) or the turn passes (plain, valued
// as 1 minus the stored probability, since the stored board is already in
// the next mover's perspective).
type successors struct {
	extra []int64
	plain []int64
}

// recipe is the precomputed, per-position-pair update recipe: for each die
// total 1..4, either nil (the roll is a forced pass or an immediate win,
// already folded into passWeight/winWeight) or the partitioned successor
// keys. Recipes never change within a stratum; only the probabilities they
// reference do, which is what makes recipe caching the dominant win.
type recipe struct {
	winWeight  float64
	passWeight float64
	perPips    [4]*successors
}

// buildRecipe computes board's recipe. reversed must be rules.ReverseBoard(board).
func buildRecipe(board, reversed rules.Board) (recipe, error) {
	var r recipe
	for pips := 0; pips <= 4; pips++ {
		pr := diceWeights[pips]
		am := rules.AllMoves(board, pips)

		if pips == 0 || (len(am) == 1 && !am[0].ExtraTurn && am[0].Board == reversed) {
			r.passWeight += pr
			continue
		}

		won := false
		for _, m := range am {
			if rules.GameOver(m.Board) {
				r.winWeight = pr
				won = true
				break
			}
		}
		if won {
			continue
		}

		s := &successors{}
		for _, m := range am {
			idx, err := codec.BoardToIndex(m.Board)
			if err != nil {
				return recipe{}, err
			}
			if m.ExtraTurn {
				s.extra = append(s.extra, idx)
			} else {
				s.plain = append(s.plain, idx)
			}
		}
		r.perPips[pips-1] = s
	}
	return r, nil
}
