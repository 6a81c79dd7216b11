package opener

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"
)

var cacheBucket = []byte("resolved_apps")

// Cache memoizes Resolve results in a bbolt database, keyed by the
// xxhash of the target path plus the mime list's mtime so edits to
// the mime list invalidate every cached entry transparently.
type Cache struct {
	db *bbolt.DB
}

// cachedEntry is the JSON payload stored per key.
type cachedEntry struct {
	App       string `json:"app"`
	MimeType  string `json:"mime_type"`
	Extension string `json:"extension"`
}

// OpenCache opens (creating if absent) the bbolt-backed cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opener: open cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cacheBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

func cacheKey(path string, mimeListMTime time.Time) []byte {
	h := xxhash.New()
	h.WriteString(path)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(mimeListMTime.UnixNano()))
	h.Write(buf[:])
	sum := h.Sum64()
	return []byte(fmt.Sprintf("%016x", sum))
}

// Get looks up a previously resolved app for path, scoped to the mime
// list's current mtime.
func (c *Cache) Get(path string, mimeListMTime time.Time) (app, mimeType, extension string, ok bool) {
	key := cacheKey(path, mimeListMTime)
	var entry cachedEntry
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(cacheBucket).Get(key)
		if data == nil {
			return fmt.Errorf("miss")
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return "", "", "", false
	}
	return entry.App, entry.MimeType, entry.Extension, true
}

// Put stores a resolution for path scoped to the mime list's mtime.
func (c *Cache) Put(path string, mimeListMTime time.Time, app, mimeType, extension string) error {
	data, err := json.Marshal(cachedEntry{App: app, MimeType: mimeType, Extension: extension})
	if err != nil {
		return err
	}
	key := cacheKey(path, mimeListMTime)
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(cacheBucket).Put(key, data)
	})
}

func mtimeOrZero(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
