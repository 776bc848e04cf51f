package solver

import (
	"testing"

	"github.com/msheby/rogour/internal/codec"
	"github.com/msheby/rogour/internal/probdb"
	"github.com/msheby/rogour/internal/rules"
)

func TestBuildRecipeWeightsSumToSixteen(t *testing.T) {
	b := rules.StartPosition()
	r, err := buildRecipe(b, rules.ReverseBoard(b))
	if err != nil {
		t.Fatalf("buildRecipe: %v", err)
	}
	total := r.winWeight + r.passWeight
	for i, s := range r.perPips {
		if s != nil {
			total += rollWeights[i]
		}
	}
	if total != 16 {
		t.Fatalf("recipe weights sum to %v, want 16", total)
	}
}

func TestBuildRecipeImmediateWin(t *testing.T) {
	// Green has six men off and the seventh sitting one square from bearing
	// off; rolling a 1 wins outright.
	var b rules.Board
	b[13] = 1
	b[14] = 6
	r, err := buildRecipe(b, rules.ReverseBoard(b))
	if err != nil {
		t.Fatalf("buildRecipe: %v", err)
	}
	if r.winWeight != diceWeights[1] {
		t.Fatalf("winWeight = %v, want %v (weight of pips=1)", r.winWeight, diceWeights[1])
	}
	if r.perPips[0] != nil {
		t.Fatal("pips=1 should be folded into winWeight, not left as a successor set")
	}
}

func TestBuildRecipeForcedPassOnOneRoll(t *testing.T) {
	// A lone Green man one square behind Red's safe-square piece has no
	// legal move on a roll of 1 (blocked), but can step past on 2, 3, or 4.
	var b rules.Board
	b[6] = 1
	b[7] = -1
	b[14] = 6
	b[21] = 6
	r, err := buildRecipe(b, rules.ReverseBoard(b))
	if err != nil {
		t.Fatalf("buildRecipe: %v", err)
	}
	if r.perPips[0] != nil {
		t.Fatal("pips=1 is blocked by the safe-square piece and must fold into passWeight")
	}
	if want := diceWeights[0] + diceWeights[1]; r.passWeight != want {
		t.Fatalf("passWeight = %v, want %v (pips=0 plus the blocked pips=1)", r.passWeight, want)
	}
	for i := 1; i < 4; i++ {
		if r.perPips[i] == nil {
			t.Fatalf("perPips[%d] (pips=%d) should have a legal move past the blocked square", i, i+1)
		}
	}
}

func TestUpdateStaysInUnitRange(t *testing.T) {
	b := rules.StartPosition()
	rb := rules.ReverseBoard(b)
	fwd, err := buildRecipe(b, rb)
	if err != nil {
		t.Fatalf("buildRecipe(fwd): %v", err)
	}
	rev, err := buildRecipe(rb, b)
	if err != nil {
		t.Fatalf("buildRecipe(rev): %v", err)
	}

	db := probdb.NewEmpty(4)
	for _, m := range fwd.perPips {
		seedSuccessors(t, db, m, 0.5)
	}
	for _, m := range rev.perPips {
		seedSuccessors(t, db, m, 0.5)
	}

	x, y := update(fwd, rev, db)
	if x < 0 || x > 1 || y < 0 || y > 1 {
		t.Fatalf("update produced out-of-range probabilities x=%v y=%v", x, y)
	}
}

func seedSuccessors(t *testing.T, db *probdb.ProbDb, s *successors, p float64) {
	t.Helper()
	if s == nil {
		return
	}
	for _, k := range s.extra {
		db.Set(k, p)
	}
	for _, k := range s.plain {
		db.Set(k, p)
	}
}

func TestTotalPipsStartPositionIsZero(t *testing.T) {
	if got := totalPips(rules.StartPosition()); got != 0 {
		t.Fatalf("totalPips(start) = %d, want 0", got)
	}
}

func TestTotalPipsDecreasesWithProgress(t *testing.T) {
	var near, far rules.Board
	near[0] = 1 // Green man just entered
	far[13] = 1 // Green man one step from bearing off
	if totalPips(far) >= totalPips(near) {
		t.Fatalf("totalPips(far=%d) should be less than totalPips(near=%d)", totalPips(far), totalPips(near))
	}
}

func TestSeedTerminalSetsWonPositionsToOne(t *testing.T) {
	// Reproduces spec end-to-end test #6: from any position with Green
	// having borne off all 7 men, P must read back as exactly 1, at the
	// 4-byte width the solver actually writes to its canonical database.
	db := probdb.NewEmpty(4)
	if err := seedTerminal(db, nil); err != nil {
		t.Fatalf("seedTerminal: %v", err)
	}

	for rOff := 0; rOff <= 6; rOff++ {
		for b := range codec.PositionsIterator(7, rOff) {
			p, ok, err := db.AGet(b)
			if err != nil {
				t.Fatalf("AGet: %v", err)
			}
			if !ok {
				t.Fatalf("board %v (gOff=7, rOff=%d) was not seeded", b, rOff)
			}
			// The 4-byte encoding's largest representable code is one unit
			// short of 2^31, so a seeded 1.0 reads back as the nearest
			// representable value, not bit-for-bit 1.0.
			if diff := p - 1; diff > 1e-8 || diff < -1e-8 {
				t.Fatalf("board %v (gOff=7, rOff=%d) has P=%v, want ~1", b, rOff, p)
			}

			rp, ok, err := db.AGet(rules.ReverseBoard(b))
			if err != nil {
				t.Fatalf("AGet(reverse): %v", err)
			}
			if !ok {
				t.Fatalf("reverse of %v was not seeded", b)
			}
			if rp != 0 {
				t.Fatalf("reverse of %v has P=%v, want exactly 0", b, rp)
			}
		}
	}
}

func TestBuildUpdateListNoDuplicateIndices(t *testing.T) {
	items, err := buildUpdateList(6, 6)
	if err != nil {
		t.Fatalf("buildUpdateList: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("buildUpdateList(6,6) returned no items")
	}
	seen := make(map[int64]bool)
	for _, it := range items {
		keys := []int64{it.key}
		if it.rkey != it.key { // a self-symmetric board is one item with key == rkey
			keys = append(keys, it.rkey)
		}
		for _, k := range keys {
			if seen[k] {
				t.Fatalf("index %d appears in more than one update item", k)
			}
			seen[k] = true
		}
	}
}

func TestBuildUpdateListCoversStratum(t *testing.T) {
	items, err := buildUpdateList(6, 6)
	if err != nil {
		t.Fatalf("buildUpdateList: %v", err)
	}
	covered := make(map[int64]bool)
	for _, it := range items {
		covered[it.key] = true
		covered[it.rkey] = true
	}
	for b := range codec.PositionsIterator(6, 6) {
		idx, err := codec.BoardToIndex(b)
		if err != nil {
			t.Fatalf("BoardToIndex: %v", err)
		}
		if !covered[idx] {
			t.Fatalf("board %v (index %d) in stratum (6,6) is not covered by buildUpdateList", b, idx)
		}
	}
}
