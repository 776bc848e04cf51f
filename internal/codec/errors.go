package codec

import "errors"

// ErrInvalidCode is returned when a 5-character code does not decode to a
// consistent board.
var ErrInvalidCode = errors.New("codec: invalid code")

// ErrInvalidIndex is returned when a dense index is out of [0, TotalPositions)
// or decodes to internally contradictory stratum counts.
var ErrInvalidIndex = errors.New("codec: invalid index")
