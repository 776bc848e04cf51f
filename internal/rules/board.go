// Package rules implements the ROGOUR board representation and the legal
// move generator: entry, movement, captures, the protected square, extra
// turns, and bear-off.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Board is the 22-slot ROGOUR position. It is a small value type: callers
// copy it by assignment, never by pointer, so the move generator and solver
// never allocate on their hot paths.
//
//	0..3   Green entry column (a,b,c,d)
//	4..11  shared middle strip (squares 1..8)
//	12..13 Green exit column (y,z)
//	14     Green pieces borne off
//	15..18 Red entry column (A..D)
//	19..20 Red exit column (Y,Z)
//	21     Red pieces borne off
type Board [22]int8

const (
	greenOff = 14
	redOff   = 21
)

// Rosettes grants an extra turn on landing; 7 is additionally safe.
var rosettes = [22]bool{3: true, 7: true, 13: true, 18: true, 20: true}

const safeSquare = 7

// ErrInvalidBoard is returned by Validate when a board violates one of the
// structural invariants in the data model.
var ErrInvalidBoard = errors.New("rules: invalid board")

// StartPosition returns the all-zero starting board.
func StartPosition() Board {
	return Board{}
}

// ReverseBoard swaps Green/Red perspective. It is involutive:
// ReverseBoard(ReverseBoard(b)) == b for every valid b.
func ReverseBoard(b Board) Board {
	var r Board
	for i := 0; i < 4; i++ {
		opp := 15 + i
		r[i] = -b[opp]
		r[opp] = -b[i]
	}
	for i := 4; i < 12; i++ {
		r[i] = -b[i]
	}
	for i := 12; i < 14; i++ {
		opp := 7 + i
		r[i] = -b[opp]
		r[opp] = -b[i]
	}
	r[greenOff] = b[redOff]
	r[redOff] = b[greenOff]
	return r
}

// GameOver reports whether either side has borne off all seven pieces.
func GameOver(b Board) bool {
	return b[greenOff] == 7 || b[redOff] == 7
}

// Homes returns the number of Green and Red pieces still at home (not yet
// entered play).
func Homes(b Board) (greenHome, redHome int) {
	gOnBoard := countEq(b[0:14], 1)
	greenHome = (7 - int(b[greenOff])) - gOnBoard

	rOnBoard := countEq(b[15:19], -1) + countEq(b[4:12], -1) + countEq(b[19:21], -1)
	redHome = (7 - int(b[redOff])) - rOnBoard
	return greenHome, redHome
}

// TypeBearOff reports whether the position is contact-free: one side has
// all seven pieces either on its own exit column or borne off (none at home
// and none on the midfield strip), so no further capture or blocking is
// possible between the two sides.
func TypeBearOff(b Board) bool {
	if int(b[12])+int(b[13])+int(b[14]) == 7 {
		return true
	}
	if -int(b[19])-int(b[20])+int(b[21]) == 7 {
		return true
	}
	return false
}

// Validate checks every structural invariant in the data model. It is never
// called on the solver's hot path; it exists for codec decode paths and
// tests.
func Validate(b Board) error {
	for _, i := range [...]int{0, 1, 2, 3, 12, 13} {
		if b[i] != 0 && b[i] != 1 {
			return fmt.Errorf("%w: slot %d holds %d, want 0 or 1", ErrInvalidBoard, i, b[i])
		}
	}
	for i := 4; i < 12; i++ {
		if b[i] < -1 || b[i] > 1 {
			return fmt.Errorf("%w: slot %d holds %d, want -1..1", ErrInvalidBoard, i, b[i])
		}
	}
	for _, i := range [...]int{15, 16, 17, 18, 19, 20} {
		if b[i] != 0 && b[i] != -1 {
			return fmt.Errorf("%w: slot %d holds %d, want 0 or -1", ErrInvalidBoard, i, b[i])
		}
	}
	gOnBoard := countEq(b[0:14], 1)
	if gOnBoard+int(b[greenOff]) > 7 {
		return fmt.Errorf("%w: Green on-board (%d) + off (%d) > 7", ErrInvalidBoard, gOnBoard, b[greenOff])
	}
	rOnBoard := countEq(b[4:12], -1) + countEq(b[15:21], -1)
	if rOnBoard+int(b[redOff]) > 7 {
		return fmt.Errorf("%w: Red on-board (%d) + off (%d) > 7", ErrInvalidBoard, rOnBoard, b[redOff])
	}
	if b[greenOff] == 7 && b[redOff] == 7 {
		return fmt.Errorf("%w: both sides show 7 borne off", ErrInvalidBoard)
	}
	return nil
}

func countEq(s []int8, v int8) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}

// DebugString renders the board as a three-row ASCII diagram. It exists for
// tests and the rogour-inspect diagnostic tool, never for gameplay.
func DebugString(b Board) string {
	gHome, rHome := Homes(b)

	var top, mid, bot strings.Builder
	for i := 18; i >= 15; i-- {
		top.WriteString(glyph(b[i], "O"))
	}
	top.WriteString("  ")
	top.WriteString(glyph(b[20], "O"))
	top.WriteString(glyph(b[19], "O"))
	fmt.Fprintf(&top, " (%d)", b[redOff])

	for i := 4; i < 12; i++ {
		switch b[i] {
		case -1:
			mid.WriteByte('O')
		case 1:
			mid.WriteByte('X')
		default:
			mid.WriteByte('.')
		}
	}

	for i := 3; i >= 0; i-- {
		bot.WriteString(glyph(b[i], "X"))
	}
	bot.WriteString("  ")
	bot.WriteString(glyph(b[13], "X"))
	bot.WriteString(glyph(b[12], "X"))
	fmt.Fprintf(&bot, " (%d)", b[greenOff])

	return fmt.Sprintf("[%d] %s\n    %s\n[%d] %s", rHome, top.String(), mid.String(), gHome, bot.String())
}

func glyph(v int8, mark string) string {
	if v != 0 {
		return mark
	}
	return "."
}
