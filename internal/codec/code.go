package codec

import (
	"fmt"

	"github.com/msheby/rogour/internal/rules"
)

// greenPrivates and redPrivates list the six private squares per side, MSB
// first, used by both BoardToCode and CodeToBoard.
var greenPrivates = [6]int{0, 1, 2, 3, 12, 13}
var redPrivates = [6]int{15, 16, 17, 18, 19, 20}

// BoardToCode packs b into a 31-bit integer (3 bits Green at-home count, 6
// bits Green private-square presence, 3 bits Red at-home count, 6 bits Red
// private-square presence, 13 bits base-3 middle strip) and renders it as 5
// Z85 characters, reversed for on-disk compatibility with the original
// encoder.
func BoardToCode(b rules.Board) (string, error) {
	gHome, rHome := privateHomes(b)
	if gHome < 0 || gHome > 7 || rHome < 0 || rHome > 7 {
		return "", fmt.Errorf("%w: at-home counts out of range (%d, %d)", ErrInvalidCode, gHome, rHome)
	}

	var greenBits, redBits uint32
	for _, sq := range greenPrivates {
		greenBits <<= 1
		if b[sq] != 0 {
			greenBits |= 1
		}
	}
	for _, sq := range redPrivates {
		redBits <<= 1
		if b[sq] != 0 {
			redBits |= 1
		}
	}

	var mid uint32
	for i := 4; i < 12; i++ {
		mid = mid*3 + uint32(b[i]+1)
	}

	value := uint32(gHome)<<28 | greenBits<<22 | uint32(rHome)<<19 | redBits<<13 | mid
	encoded := encodeZ85(value)
	return reverseString(encoded), nil
}

// CodeToBoard decodes a 5-character Z85 code produced by BoardToCode back
// into a board.
func CodeToBoard(code string) (rules.Board, error) {
	value, err := decodeZ85(reverseString(code))
	if err != nil {
		return rules.Board{}, err
	}
	if value >= 1<<31 {
		return rules.Board{}, fmt.Errorf("%w: decoded value %d does not fit in 31 bits", ErrInvalidCode, value)
	}

	gHome := int((value >> 28) & 0x7)
	greenBits := (value >> 22) & 0x3F
	rHome := int((value >> 19) & 0x7)
	redBits := (value >> 13) & 0x3F
	mid := value & 0x1FFF

	var b rules.Board
	for i, sq := range greenPrivates {
		if greenBits&(1<<uint(5-i)) != 0 {
			b[sq] = 1
		}
	}
	for i, sq := range redPrivates {
		if redBits&(1<<uint(5-i)) != 0 {
			b[sq] = -1
		}
	}
	if mid >= 6561 { // 3^8
		return rules.Board{}, fmt.Errorf("%w: middle-strip digit %d out of range", ErrInvalidCode, mid)
	}
	for i := 11; i >= 4; i-- {
		digit := mid % 3
		b[i] = int8(digit) - 1
		mid /= 3
	}

	gOnBoard := 0
	for i := 0; i < 14; i++ {
		if b[i] == 1 {
			gOnBoard++
		}
	}
	gOff := 7 - (gHome + gOnBoard)
	if gOff < 0 || gOff > 7 {
		return rules.Board{}, fmt.Errorf("%w: Green borne-off count %d out of range", ErrInvalidCode, gOff)
	}
	b[14] = int8(gOff)

	rOnBoard := 0
	for i := 4; i < 12; i++ {
		if b[i] == -1 {
			rOnBoard++
		}
	}
	for _, sq := range [...]int{15, 16, 17, 18, 19, 20} {
		if b[sq] == -1 {
			rOnBoard++
		}
	}
	rOff := 7 - (rHome + rOnBoard)
	if rOff < 0 || rOff > 7 {
		return rules.Board{}, fmt.Errorf("%w: Red borne-off count %d out of range", ErrInvalidCode, rOff)
	}
	b[21] = int8(rOff)

	if err := rules.Validate(b); err != nil {
		return rules.Board{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return b, nil
}

// privateHomes returns the at-home counts (7 minus off minus on-board) for
// both sides, the same quantity BoardToCode packs into the code's 3-bit
// fields.
func privateHomes(b rules.Board) (greenHome, redHome int) {
	gOnBoard := 0
	for i := 0; i < 14; i++ {
		if b[i] == 1 {
			gOnBoard++
		}
	}
	greenHome = 7 - int(b[14]) - gOnBoard

	rOnBoard := 0
	for i := 4; i < 12; i++ {
		if b[i] == -1 {
			rOnBoard++
		}
	}
	for _, sq := range [...]int{15, 16, 17, 18, 19, 20} {
		if b[sq] == -1 {
			rOnBoard++
		}
	}
	redHome = 7 - int(b[21]) - rOnBoard
	return greenHome, redHome
}

func reverseString(s string) string {
	r := []byte(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
