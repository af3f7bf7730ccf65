package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFilms      = []byte("films")
	bucketFavourites = []byte("favourites")
	bucketWatchlist  = []byte("watchlist")
)

// Store caches hydrated film details and per-user collections in BoltDB,
// with an in-memory layer promoted on access. A Store created without a
// cache directory runs memory-only.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

func NewStore(baseCacheDir, serverURL string) (*Store, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "filmhive.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFilms, bucketFavourites, bucketWatchlist} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) clearBucket(bucket []byte) {
	s.mu.Lock()
	prefix := string(bucket) + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Films ===

func (s *Store) GetFilm(id int) (*domain.Film, bool) {
	var film domain.Film
	if !s.get(bucketFilms, strconv.Itoa(id), &film) {
		return nil, false
	}
	return &film, true
}

func (s *Store) SaveFilm(film *domain.Film) error {
	return s.set(bucketFilms, strconv.Itoa(film.ID), film)
}

// === Favourites ===

func (s *Store) GetFavourites() ([]domain.Favourite, bool) {
	var favs []domain.Favourite
	ok := s.get(bucketFavourites, "list", &favs)
	return favs, ok
}

func (s *Store) SaveFavourites(favs []domain.Favourite) error {
	return s.set(bucketFavourites, "list", favs)
}

// === Watchlist ===

func (s *Store) GetWatchlist() ([]domain.WatchlistEntry, bool) {
	var entries []domain.WatchlistEntry
	ok := s.get(bucketWatchlist, "list", &entries)
	return entries, ok
}

func (s *Store) SaveWatchlist(entries []domain.WatchlistEntry) error {
	return s.set(bucketWatchlist, "list", entries)
}

// === Invalidation ===

// InvalidateUser wipes per-user collections, keeping hydrated film
// details. Called on logout.
func (s *Store) InvalidateUser() {
	s.clearBucket(bucketFavourites)
	s.clearBucket(bucketWatchlist)
}

func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	for _, bucket := range [][]byte{bucketFilms, bucketFavourites, bucketWatchlist} {
		s.clearBucket(bucket)
	}
}
