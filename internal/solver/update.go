package solver

import (
	"fmt"
	"math"

	"github.com/msheby/rogour/internal/probdb"
)

// rollWeights is diceWeights for pips 1..4, matching recipe.perPips's indexing.
var rollWeights = [4]float64{4, 6, 4, 1}

func maxDirect(keys []int64, db *probdb.ProbDb) float64 {
	best := math.Inf(-1)
	for _, k := range keys {
		v, _ := db.Get(k)
		if v > best {
			best = v
		}
	}
	return best
}

func maxOneMinus(keys []int64, db *probdb.ProbDb) float64 {
	best := math.Inf(-1)
	for _, k := range keys {
		v, _ := db.Get(k)
		if m := 1 - v; m > best {
			best = m
		}
	}
	return best
}

// evaluate computes A (or B, for the reversed side): the roll-weighted sum
// of the mover's best continuation, plus the immediate-win weight.
func evaluate(r recipe, db *probdb.ProbDb) float64 {
	sm := 0.0
	for i, s := range r.perPips {
		if s == nil {
			continue
		}
		var m float64
		switch {
		case len(s.extra) == 0:
			m = maxOneMinus(s.plain, db)
		case len(s.plain) == 0:
			m = maxDirect(s.extra, db)
		default:
			m = math.Max(maxDirect(s.extra, db), maxOneMinus(s.plain, db))
		}
		sm += m * rollWeights[i]
	}
	return r.winWeight + sm
}

// update applies the coupled fixed-point equations to one position pair,
// returning the new probability for the forward board (x) and its reverse
// (y). Both must land in [0,1]; straying beyond floating-point slack is a
// programmer error in the recipe or the caller's stratum ordering.
func update(fwd, rev recipe, db *probdb.ProbDb) (x, y float64) {
	a := evaluate(fwd, db)
	p1 := fwd.passWeight
	b := evaluate(rev, db)
	p2 := rev.passWeight

	x = (16*a + p1*(16-b-p2)) / (256 - p1*p2)
	y = (b + p2*(1-x)) / 16

	const slack = 1e-9
	if x < -slack || x > 1+slack || y < -slack || y > 1+slack {
		panic(fmt.Sprintf("solver: update produced out-of-range probabilities x=%v y=%v", x, y))
	}
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	if y < 0 {
		y = 0
	} else if y > 1 {
		y = 1
	}
	return x, y
}
