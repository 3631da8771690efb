// Package cache keeps fetched listing documents in a bbolt file so they can be
// re-queried without network access.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"

	"github.com/yourusername/bucket-browser/fetch"
)

var documentsBucket = []byte("documents")

// ErrNotCached is returned in offline mode when no document is stored for a source
var ErrNotCached = errors.New("document not cached")

// Entry is one stored document
type Entry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Body      string    `json:"body"`
}

// Store is a bbolt-backed document store keyed by fetch source
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// Open opens or creates the cache file at path
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the cache file
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores body as the latest document for source
func (s *Store) Put(source, body string) error {
	data, err := json.Marshal(Entry{FetchedAt: s.now().UTC(), Body: body})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(documentsBucket).Put([]byte(source), data)
	})
}

// Get returns the stored document for source. ok is false when nothing is stored.
func (s *Store) Get(source string) (Entry, bool, error) {
	var entry Entry
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(documentsBucket).Get([]byte(source))
		if data == nil {
			return nil
		}
		found = true
		// data is only valid inside the transaction; Unmarshal copies it
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read cache entry %s: %w", source, err)
	}
	return entry, found, nil
}

// Sources lists every cached source
func (s *Store) Sources() ([]string, error) {
	var sources []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(documentsBucket).ForEach(func(k, _ []byte) error {
			sources = append(sources, string(k))
			return nil
		})
	})
	return sources, err
}

// Fetcher wraps another fetcher. Online it stores every successful fetch;
// offline it only serves stored documents.
type Fetcher struct {
	next    fetch.Fetcher
	store   *Store
	offline bool
}

var _ fetch.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a caching fetcher in front of next
func NewFetcher(next fetch.Fetcher, store *Store, offline bool) *Fetcher {
	return &Fetcher{next: next, store: store, offline: offline}
}

// Source returns the wrapped fetcher's source
func (f *Fetcher) Source() string {
	return f.next.Source()
}

// Fetch returns a document from the network or, offline, from the cache
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	source := f.next.Source()

	if f.offline {
		entry, ok, err := f.store.Get(source)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s: %w", source, ErrNotCached)
		}
		log.Info().Str("source", source).Time("fetched_at", entry.FetchedAt).Msg("Using cached listing document")
		return entry.Body, nil
	}

	body, err := f.next.Fetch(ctx)
	if err != nil {
		return "", err
	}

	if err := f.store.Put(source, body); err != nil {
		// The document is still usable even if it could not be stored
		log.Warn().Err(err).Str("source", source).Msg("Failed to cache listing document")
	}
	return body, nil
}
