// Package checkpoint records, in a small embedded badger database, which
// solver strata have already converged, so a long-running solve can be
// interrupted and resumed without redoing finished work.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrIoFailure wraps an underlying badger open/read/write error.
var ErrIoFailure = errors.New("checkpoint: io failure")

const keyPrefix = "stratum:"

// StratumRecord is what gets stored for one completed (gOff, rOff) stratum.
type StratumRecord struct {
	MaxError float64       `json:"maxError"`
	Rounds   int           `json:"rounds"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Ledger wraps the badger handle opened for one solver run's checkpoint
// directory.
type Ledger struct {
	db *badger.DB
}

// Open opens (creating if necessary) the checkpoint ledger at dir.
func Open(dir string) (*Ledger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return &Ledger{db: db}, nil
}

// Close closes the underlying badger handle.
func (l *Ledger) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// RecordStratum marks (gOff, rOff) as converged, storing rec for later
// inspection through Stratum.
func (l *Ledger) RecordStratum(gOff, rOff int, rec StratumRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := strataKey(gOff, rOff)
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// Stratum returns the recorded StratumRecord for (gOff, rOff), and false if
// that stratum has not been recorded as complete.
func (l *Ledger) Stratum(gOff, rOff int) (StratumRecord, bool, error) {
	var rec StratumRecord
	found := false
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(strataKey(gOff, rOff))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return StratumRecord{}, false, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return rec, found, nil
}

// CompletedStrata returns the set of (gOff, rOff) pairs already recorded as
// converged, keyed the same way solver.Options.Skip expects.
func (l *Ledger) CompletedStrata() (map[[2]int]bool, error) {
	out := make(map[[2]int]bool)
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g, r int
			if _, err := fmt.Sscanf(string(it.Item().Key()), keyPrefix+"%d:%d", &g, &r); err != nil {
				continue
			}
			out[[2]int{g, r}] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return out, nil
}

func strataKey(gOff, rOff int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", keyPrefix, gOff, rOff))
}
