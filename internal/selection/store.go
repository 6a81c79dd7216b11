// Package selection implements the shared selection set ("selbox"): an
// ordered, de-duplicated list of absolute paths, file-backed and
// flushed on every mutation (spec.md §3, §4.5).
package selection

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// Store holds the selection in memory and mirrors it to path on every
// mutating call, matching spec.md §5's "full-file replacement on every
// mutation" rule for the one file written from multiple call sites.
type Store struct {
	mu    sync.Mutex
	paths []string
	index map[string]int
	path  string
}

// New creates an empty store backed by file path (not yet loaded).
func New(path string) *Store {
	return &Store{path: path, index: make(map[string]int)}
}

// Load reads the backing file, replacing the in-memory set. A missing
// file is not an error — it simply means an empty selection.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.paths = nil
		s.index = make(map[string]int)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var paths []string
	index := make(map[string]int)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := index[line]; dup {
			continue
		}
		index[line] = len(paths)
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	s.paths = paths
	s.index = index
	return nil
}

// Add appends paths not already present, in order, skipping exact
// duplicates (spec.md's "de-duplicated by exact string equality").
// Every path must already be absolute; callers resolve ELNs, globs,
// and bookmarks before calling Add.
func (s *Store) Add(paths ...string) error {
	s.mu.Lock()
	added := false
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			continue
		}
		if _, dup := s.index[p]; dup {
			continue
		}
		s.index[p] = len(s.paths)
		s.paths = append(s.paths, p)
		added = true
	}
	s.mu.Unlock()

	if added {
		return s.flush()
	}
	return nil
}

// RemoveIndices removes the 1-based indices (as shown to the user),
// ignoring out-of-range values, and flushes.
func (s *Store) RemoveIndices(indices ...int) error {
	s.mu.Lock()
	toRemove := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 1 && i <= len(s.paths) {
			toRemove[i-1] = true
		}
	}
	if len(toRemove) == 0 {
		s.mu.Unlock()
		return nil
	}
	kept := s.paths[:0:0]
	for i, p := range s.paths {
		if !toRemove[i] {
			kept = append(kept, p)
		}
	}
	s.rebuild(kept)
	s.mu.Unlock()
	return s.flush()
}

// Remove removes specific paths by value.
func (s *Store) Remove(paths ...string) error {
	s.mu.Lock()
	remove := make(map[string]bool, len(paths))
	for _, p := range paths {
		remove[p] = true
	}
	kept := s.paths[:0:0]
	for _, p := range s.paths {
		if !remove[p] {
			kept = append(kept, p)
		}
	}
	s.rebuild(kept)
	s.mu.Unlock()
	return s.flush()
}

// Clear empties the selection and removes the backing file entirely
// (spec.md §4.5: "on an empty store the file is removed").
func (s *Store) Clear() error {
	s.mu.Lock()
	s.paths = nil
	s.index = make(map[string]int)
	s.mu.Unlock()
	return s.flush()
}

// List returns a snapshot of the current selection, in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Contains reports whether p is currently selected.
func (s *Store) Contains(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[p]
	return ok
}

// Len reports the current selection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// CopyToClipboard copies the selection, one path per line, to the OS
// clipboard, extending "sb" with a quick hand-off to other programs.
func (s *Store) CopyToClipboard() error {
	list := s.List()
	return clipboard.WriteAll(strings.Join(list, "\n"))
}

func (s *Store) rebuild(paths []string) {
	s.paths = paths
	s.index = make(map[string]int, len(paths))
	for i, p := range paths {
		s.index[p] = i
	}
}

// flush performs a full-file replacement; must be called without s.mu
// held (it takes its own snapshot under lock).
func (s *Store) flush() error {
	s.mu.Lock()
	paths := make([]string, len(s.paths))
	copy(paths, s.paths)
	path := s.path
	s.mu.Unlock()

	if len(paths) == 0 {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return w.Flush()
}
