package history

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

var (
	// ErrNotFound is returned when no record matches an ID.
	ErrNotFound = errors.New("history record not found")

	// ErrAmbiguousID is returned when an ID prefix matches several records.
	ErrAmbiguousID = errors.New("history record ID is ambiguous")
)

// Store wraps Badger for assessment history.
type Store struct {
	db      *badger.DB
	nowFunc func() time.Time
}

// Open opens or creates a history store at the given directory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open history at %s: %w", path, err)
	}
	return &Store{db: db, nowFunc: time.Now}, nil
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory history: %w", err)
	}
	return &Store{db: db, nowFunc: time.Now}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores an assessment and returns the created record.
func (s *Store) Add(inv types.HardwareInventory, result types.AssessmentResult) (*Record, error) {
	ts := inv.CollectedAt
	if ts.IsZero() {
		ts = s.nowFunc()
	}

	rec := &Record{
		Version:   FormatVersion,
		ID:        uuid.NewString(),
		Timestamp: ts.UTC(),
		Hostname:  inv.Hostname,
		Inventory: inv,
		Result:    result,
	}

	value, err := rec.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	key := recordKey(rec.Timestamp, rec.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, value); err != nil {
			return err
		}
		return txn.Set(idKey(rec.ID), key)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store record: %w", err)
	}
	return rec, nil
}

// List returns records newest first. If limit is 0 or negative, all
// records are returned.
func (s *Store) List(limit int) ([]Record, error) {
	records := []Record{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = recordPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration seeks to the largest key under the prefix.
		seek := append(bytes.Clone(recordPrefix), 0xff)
		for it.Seek(seek); it.ValidForPrefix(recordPrefix); it.Next() {
			var rec Record
			if err := it.Item().Value(rec.Decode); err != nil {
				return fmt.Errorf("failed to decode record: %w", err)
			}
			records = append(records, rec)
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns the record with the given ID. A unique ID prefix is
// accepted so the short IDs shown in reports can be used.
func (s *Store) Get(id string) (*Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty ID", ErrNotFound)
	}

	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := s.resolve(txn, id)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(rec.Decode)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// resolve maps an ID or ID prefix to its record key.
func (s *Store) resolve(txn *badger.Txn, id string) ([]byte, error) {
	prefix := idKey(id)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var key []byte
	matches := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		matches++
		if matches > 1 {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}
		v, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		key = v
	}
	if matches == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return key, nil
}

// Delete removes the record with the given ID or unique ID prefix.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key, err := s.resolve(txn, id)
		if err != nil {
			return err
		}
		var rec Record
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		if err := item.Value(rec.Decode); err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(idKey(rec.ID))
	})
}

// Cleanup removes records older than retentionDays and returns how many
// were removed. A retentionDays of 0 or less keeps everything.
func (s *Store) Cleanup(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.nowFunc().AddDate(0, 0, -retentionDays)

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = recordPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Keys are chronological, so stop at the first one inside the window.
		for it.Seek(recordPrefix); it.ValidForPrefix(recordPrefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			ts, ok := recordTime(key)
			if !ok || !ts.Before(cutoff) {
				break
			}
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range stale {
		id := string(key[len(recordPrefix)+8:])
		if err := wb.Delete(key); err != nil {
			return 0, err
		}
		if err := wb.Delete(idKey(id)); err != nil {
			return 0, err
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("failed to remove expired records: %w", err)
	}
	return len(stale), nil
}

// Latest returns the most recent record, or ErrNotFound when empty.
func (s *Store) Latest() (*Record, error) {
	records, err := s.List(1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}
