package probdb

import (
	"fmt"
	"os"
)

// magic identifies the optional headered ".rogourdb" sibling format: an
// 8-byte prefix ("ROGOURDB") + 1-byte version + 1-byte wsize + 6 bytes of
// reserved padding, followed by the identical flat byte buffer Save/Load
// produce headerless.
var magic = [8]byte{'R', 'O', 'G', 'O', 'U', 'R', 'D', 'B'}

const headerVersion = 1
const headerLen = 16

// SaveWithHeader writes db to path prefixed with the .rogourdb header.
// Opt-in only: ProbDb.Save never writes this format.
func (db *ProbDb) SaveWithHeader(path string) error {
	out := make([]byte, 0, headerLen+len(db.buf))
	out = append(out, magic[:]...)
	out = append(out, headerVersion, byte(db.wsize))
	out = append(out, make([]byte, 6)...)
	out = append(out, db.buf...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// LoadAuto reads path, sniffing the .rogourdb magic; if present it validates
// the header and strips it, otherwise it falls back to the legacy
// headerless parse used by Load.
func LoadAuto(path string) (*ProbDb, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if len(buf) >= headerLen && string(buf[:8]) == string(magic[:]) {
		version := buf[8]
		wsize := int(buf[9])
		if version != headerVersion || (wsize != 2 && wsize != 4) {
			return nil, fmt.Errorf("%w: bad .rogourdb header (version=%d, wsize=%d)", ErrCorruptDatabase, version, wsize)
		}
		body := buf[headerLen:]
		gotWsize, err := wsizeForLen(int64(len(body)))
		if err != nil || gotWsize != wsize {
			return nil, fmt.Errorf("%w: .rogourdb header wsize=%d does not match body length %d", ErrCorruptDatabase, wsize, len(body))
		}
		return &ProbDb{wsize: wsize, buf: body}, nil
	}

	wsize, err := wsizeForLen(int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptDatabase, err)
	}
	return &ProbDb{wsize: wsize, buf: buf}, nil
}
