// Package probdb implements the flat, headerless win-probability database:
// one fixed-width entry per position, indexed by codec.BoardToIndex.
package probdb

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/msheby/rogour/internal/codec"
	"github.com/msheby/rogour/internal/combinatorics"
	"github.com/msheby/rogour/internal/rules"
)

const (
	sentinel16 = 0xFFFF
	sentinel32 = -1 // 0xFFFFFFFF read as a signed int32
)

// ProbDb is the whole position space's win probabilities, held as a single
// flat byte buffer. The zero value is not usable; construct with NewEmpty
// or Load.
type ProbDb struct {
	wsize int
	buf   []byte
}

// NewEmpty allocates a database of the given entry width (2 or 4 bytes),
// with every entry set to the "unknown" sentinel.
func NewEmpty(wsize int) *ProbDb {
	if wsize != 2 && wsize != 4 {
		panic(fmt.Sprintf("probdb: wsize must be 2 or 4, got %d", wsize))
	}
	buf := make([]byte, int64(wsize)*combinatorics.TotalPositions)
	for i := range buf {
		buf[i] = 0xFF
	}
	return &ProbDb{wsize: wsize, buf: buf}
}

// Wsize returns the entry width in bytes.
func (db *ProbDb) Wsize() int { return db.wsize }

// Get returns the win probability stored at index, and false if the
// sentinel is stored there.
//
// At wsize == 2, a probability of exactly 1.0 encodes to the same 16-bit
// pattern as the "unknown" sentinel and is indistinguishable from it; this
// matches the original database format and is why the solver's canonical
// output uses wsize == 4.
func (db *ProbDb) Get(index int64) (float64, bool) {
	off := index * int64(db.wsize)
	switch db.wsize {
	case 4:
		v := int32(binary.BigEndian.Uint32(db.buf[off : off+4]))
		if v == sentinel32 {
			return 0, false
		}
		return float64(v) / float64(int64(1)<<31), true
	case 2:
		v := binary.BigEndian.Uint16(db.buf[off : off+2])
		if v == sentinel16 {
			return 0, false
		}
		return float64(v) / float64((1<<16)-1), true
	default:
		panic(fmt.Sprintf("probdb: impossible wsize %d", db.wsize))
	}
}

// Set stores p at index. For wsize == 2 p is rounded to the nearest
// representable value; for wsize == 4 it is truncated, matching the
// original encoder. p == 1.0 is clamped to the largest representable code
// (0x7FFFFFFF) rather than left to overflow int32, which would otherwise
// wrap around to the sentinel's neighborhood and read back as -1.0.
func (db *ProbDb) Set(index int64, p float64) {
	off := index * int64(db.wsize)
	switch db.wsize {
	case 4:
		code := int64(p * float64(int64(1)<<31))
		if code > math.MaxInt32 {
			code = math.MaxInt32
		}
		binary.BigEndian.PutUint32(db.buf[off:off+4], uint32(int32(code)))
	case 2:
		v := uint16(math.Round(p * float64((1<<16)-1)))
		binary.BigEndian.PutUint16(db.buf[off:off+2], v)
	default:
		panic(fmt.Sprintf("probdb: impossible wsize %d", db.wsize))
	}
}

// AGet is Get(codec.BoardToIndex(b)).
func (db *ProbDb) AGet(b rules.Board) (float64, bool, error) {
	idx, err := codec.BoardToIndex(b)
	if err != nil {
		return 0, false, err
	}
	p, ok := db.Get(idx)
	return p, ok, nil
}

// ASet is Set(codec.BoardToIndex(b), p).
func (db *ProbDb) ASet(b rules.Board, p float64) error {
	idx, err := codec.BoardToIndex(b)
	if err != nil {
		return err
	}
	db.Set(idx, p)
	return nil
}

// Save writes db's byte buffer verbatim to path: no header, no checksum.
func (db *ProbDb) Save(path string) error {
	if err := os.WriteFile(path, db.buf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// Load reads a headerless database file, inferring wsize from its size.
func Load(path string) (*ProbDb, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	wsize, err := wsizeForLen(int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptDatabase, err)
	}
	return &ProbDb{wsize: wsize, buf: buf}, nil
}

func wsizeForLen(n int64) (int, error) {
	total := combinatorics.TotalPositions
	switch n {
	case 4 * total:
		return 4, nil
	case 2 * total:
		return 2, nil
	default:
		return 0, fmt.Errorf("size %d matches neither 2*%d nor 4*%d", n, total, total)
	}
}
