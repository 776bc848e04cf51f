package codec

import (
	"testing"

	"github.com/msheby/rogour/internal/combinatorics"
	"github.com/msheby/rogour/internal/rules"
)

func TestIndexRoundTripStartPosition(t *testing.T) {
	b := rules.StartPosition()
	idx, err := BoardToIndex(b)
	if err != nil {
		t.Fatalf("BoardToIndex: %v", err)
	}
	back, err := IndexToBoard(idx)
	if err != nil {
		t.Fatalf("IndexToBoard(%d): %v", idx, err)
	}
	if back != b {
		t.Fatalf("round trip mismatch: got %v, want %v", back, b)
	}
}

func TestIndexRoundTripGameOver(t *testing.T) {
	var b rules.Board
	b[14] = 7
	idx, err := BoardToIndex(b)
	if err != nil {
		t.Fatalf("BoardToIndex: %v", err)
	}
	back, err := IndexToBoard(idx)
	if err != nil {
		t.Fatalf("IndexToBoard(%d): %v", idx, err)
	}
	if back != b {
		t.Fatalf("round trip mismatch: got %v, want %v", back, b)
	}
}

func TestIndexRoundTripSample(t *testing.T) {
	for b := range PositionsIterator(3, 2) {
		idx, err := BoardToIndex(b)
		if err != nil {
			t.Fatalf("BoardToIndex(%v): %v", b, err)
		}
		back, err := IndexToBoard(idx)
		if err != nil {
			t.Fatalf("IndexToBoard(%d) for board %v: %v", idx, b, err)
		}
		if back != b {
			t.Fatalf("round trip mismatch for %v: got %v (index %d)", b, back, idx)
		}
	}
}

func TestIndexToBoardRejectsOutOfRange(t *testing.T) {
	if _, err := IndexToBoard(-1); err == nil {
		t.Fatal("expected an error for a negative index")
	}
	if _, err := IndexToBoard(combinatorics.TotalPositions); err == nil {
		t.Fatal("expected an error for an index equal to TotalPositions")
	}
}

func TestIndexCoversEntireRangeForStratum(t *testing.T) {
	seen := make(map[int64]bool)
	count := 0
	for b := range PositionsIterator(7, 7) {
		idx, err := BoardToIndex(b)
		if err != nil {
			t.Fatalf("BoardToIndex(%v): %v", b, err)
		}
		if seen[idx] {
			t.Fatalf("duplicate index %d for stratum (7,7)", idx)
		}
		seen[idx] = true
		count++
	}
	if count != 1 {
		t.Fatalf("stratum (7,7) should contain exactly the single all-off board, got %d", count)
	}
}
