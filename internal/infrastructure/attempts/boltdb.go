package attempts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store persists login attempts in BoltDB so rate-limit windows survive
// process restarts. Keys are "<client>|<nanos>" which keeps one client's
// attempts contiguous for cursor scans.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

const keySeparator = '|'

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "attempts"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Record stores one attempt for the client key.
func (s *Store) Record(client string, at time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if at.IsZero() {
		at = time.Now()
	}
	key := buildKey(client, at)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(key, []byte{})
	})
}

// CountSince returns how many attempts the client made at or after the
// given instant.
func (s *Store) CountSince(client string, since time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}

	prefix := []byte(client + string(keySeparator))
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			at, ok := keyTime(k)
			if !ok {
				continue
			}
			if !at.Before(since) {
				count++
			}
		}
		return nil
	})
	return count, err
}

// Cleanup removes attempts older than the provided instant and reports how
// many were dropped.
func (s *Store) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			at, ok := keyTime(k)
			if !ok || at.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Size returns the number of recorded attempts.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildKey(client string, at time.Time) []byte {
	return []byte(fmt.Sprintf("%s%c%020d", client, keySeparator, at.UnixNano()))
}

func keyTime(key []byte) (time.Time, bool) {
	idx := bytes.LastIndexByte(key, keySeparator)
	if idx < 0 || idx+1 >= len(key) {
		return time.Time{}, false
	}
	nanos, err := strconv.ParseInt(string(key[idx+1:]), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, nanos), true
}
