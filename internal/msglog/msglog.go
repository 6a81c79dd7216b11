// Package msglog implements the size-bounded message log ring
// (spec.md §7): warnings, errors, and notices accumulate here and are
// reachable via the "msg" verb; the prompt shows an indicator letter
// while any message is unread.
package msglog

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"
)

// Level tags the severity of one ring entry.
type Level int

const (
	Notice Level = iota
	Warning
	Error
)

func (l Level) Letter() string {
	switch l {
	case Error:
		return "E"
	case Warning:
		return "W"
	default:
		return "N"
	}
}

// Message is one ring entry.
type Message struct {
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
	Read  bool      `json:"read"`
}

var bucketName = []byte("messages")

// Ring is a bounded, bbolt-backed FIFO of messages: once Capacity is
// reached, the oldest entry is evicted on every new Add.
type Ring struct {
	mu       sync.Mutex
	db       *bbolt.DB
	capacity int
	seq      uint64
}

// Open opens (creating if absent) a message ring backed by path.
func Open(path string, capacity int) (*Ring, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("msglog: open: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	r := &Ring{db: db, capacity: capacity}
	_ = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			r.seq++
			return nil
		})
	})
	return r, nil
}

func (r *Ring) Close() error { return r.db.Close() }

// Add appends a message, evicting the oldest entry once capacity is
// exceeded.
func (r *Ring) Add(level Level, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	key := seqKey(r.seq)
	msg := Message{Level: level, Text: text, At: time.Now()}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Put(key, data); err != nil {
			return err
		}
		if r.capacity <= 0 {
			return nil
		}
		for b.Stats().KeyN > r.capacity {
			c := b.Cursor()
			k, _ := c.First()
			if k == nil {
				break
			}
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns every message in the ring, oldest first.
func (r *Ring) List() ([]Message, error) {
	var msgs []Message
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			var m Message
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			msgs = append(msgs, m)
			return nil
		})
	})
	return msgs, err
}

// UnreadIndicator returns the highest-severity letter among unread
// messages, or "" if none are unread.
func (r *Ring) UnreadIndicator() (string, error) {
	msgs, err := r.List()
	if err != nil {
		return "", err
	}
	highest := -1
	for _, m := range msgs {
		if !m.Read && int(m.Level) > highest {
			highest = int(m.Level)
		}
	}
	if highest < 0 {
		return "", nil
	}
	return Level(highest).Letter(), nil
}

// MarkAllRead marks every message as read.
func (r *Ring) MarkAllRead() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.ForEach(func(k, v []byte) error {
			var m Message
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			if m.Read {
				return nil
			}
			m.Read = true
			data, err := json.Marshal(m)
			if err != nil {
				return err
			}
			return b.Put(append([]byte{}, k...), data)
		})
	})
}

func seqKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%020d", seq))
}
