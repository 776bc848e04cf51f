package probdb

import "errors"

// ErrCorruptDatabase is returned when a loaded file's size does not match
// any supported width, or a headered file's magic/version/wsize fields are
// inconsistent.
var ErrCorruptDatabase = errors.New("probdb: corrupt database")

// ErrIoFailure wraps an underlying storage read/write error.
var ErrIoFailure = errors.New("probdb: io failure")
