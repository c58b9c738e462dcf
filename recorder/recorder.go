// Package recorder persists a record of every HTTP call made during a test run,
// so that runs against the remote sandboxes can be inspected after the fact.
package recorder

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/restcheck/rest-api-tests/apiclient"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketCalls = []byte("calls")

// Entry is one stored request/response transaction.
type Entry struct {
	ID        string
	RunID     string
	StartedAt time.Time

	Method         string
	URL            string
	RequestHeaders http.Header
	RequestBody    []byte

	Status          int
	ResponseHeaders http.Header
	ResponseBody    []byte
	ElapsedMS       float64

	Error string
}

// Store writes request records to a bbolt file, one entry per call, in call
// order. It implements apiclient.Recorder. All entries written by one Store
// share a run ID.
type Store struct {
	db    *bolt.DB
	runID string
}

// Open opens (creating if necessary) the record database at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening record database: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketCalls)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, runID: uuid.NewString()}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RunID identifies the entries written by this Store instance.
func (s *Store) RunID() string { return s.runID }

// Record stores one completed call. Storage failures are deliberately swallowed:
// recording is an observability aid and must never fail a test.
func (s *Store) Record(rec apiclient.RequestRecord) {
	entry := Entry{
		ID:              uuid.NewString(),
		RunID:           s.runID,
		StartedAt:       rec.StartedAt,
		Method:          rec.Method,
		URL:             rec.URL,
		RequestHeaders:  rec.RequestHeaders,
		RequestBody:     rec.RequestBody,
		Status:          rec.Status,
		ResponseHeaders: rec.ResponseHeaders,
		ResponseBody:    rec.ResponseBody,
		ElapsedMS:       rec.ElapsedMS,
		Error:           rec.Error,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&entry); err != nil {
		return
	}
	_ = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCalls)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), buf.Bytes())
	})
}

// Get retrieves a stored entry by its ID.
func (s *Store) Get(id string) (Entry, error) {
	var found *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCalls).ForEach(func(k, v []byte) error {
			var e Entry
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&e); err != nil {
				return err
			}
			if e.ID == id {
				found = &e
			}
			return nil
		})
	})
	if err != nil {
		return Entry{}, err
	}
	if found == nil {
		return Entry{}, errors.New("not found")
	}
	return *found, nil
}

// List returns up to limit entries, most recent first.
func (s *Store) List(limit int) ([]Entry, error) {
	res := make([]Entry, 0, limit)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketCalls).Cursor()
		for k, v := c.Last(); k != nil && len(res) < limit; k, v = c.Prev() {
			var e Entry
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&e); err != nil {
				return err
			}
			res = append(res, e)
		}
		return nil
	})
	return res, err
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketCalls).Stats().KeyN
		return nil
	})
	return n, err
}

// DeleteAll removes every stored entry.
func (s *Store) DeleteAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketCalls); err != nil {
			return fmt.Errorf("delete bucket: %w", err)
		}
		_, err := tx.CreateBucket(bucketCalls)
		return err
	})
}

// sequenceKey produces big-endian keys so that bbolt's cursor order matches
// call order.
func sequenceKey(seq uint64) []byte {
	var k [8]byte
	for i := 7; i >= 0; i-- {
		k[i] = byte(seq)
		seq >>= 8
	}
	return k[:]
}
