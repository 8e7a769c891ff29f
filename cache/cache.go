// Package cache stores alignment results in a bolt database, so
// repeated runs with the same input don't redo the alignment.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"github.com/loalfind/loalfind/align"
)

// log is the global logging variable.
var log = logging.MustGetLogger("cache")

// ALIGNMENTS is the bucket name for all the results.
var ALIGNMENTS = []byte("alignments")

// Store reads and writes alignment results.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) a bolt database file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New creates a Store using an open database. With a nil database
// nothing is stored and nothing is found.
func New(db *bolt.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key returns the key for an alignment of two sequences with the
// matrix fingerprint and the gap penalties.
func Key(seq1, seq2, matrix string, open, extend int) []byte {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s\n%d:%s\n%s\n%d %d", len(seq1), seq1, len(seq2), seq2, matrix, open, extend)
	return []byte(hex.EncodeToString(h.Sum(nil)))
}

// Put saves a result under the key.
func (s *Store) Put(key []byte, r *align.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		log.Error("Error serializing result", err)
		return err
	}
	err = SaveData(s.db, key, data)
	if err != nil {
		log.Error("Error saving result", err)
	}
	return err
}

// Get returns the result stored under the key, or nil if there is
// none.
func (s *Store) Get(key []byte) (*align.Result, error) {
	b, err := LoadData(s.db, key)
	if err != nil || b == nil {
		return nil, err
	}

	var r *align.Result
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	if r != nil {
		log.Infof("Found cached alignment (score=%v)", r.Score)
	}
	return r, nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(ALIGNMENTS)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// LoadData loads data from bolt database. The returned slice is
// a copy and stays valid after the transaction.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(ALIGNMENTS)
		if b == nil {
			return nil
		}
		if v := b.Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
