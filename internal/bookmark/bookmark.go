// Package bookmark implements the text-backed bookmarks store
// (spec.md §4.7): named and unnamed shortcuts to paths, loaded from
// several accepted line syntaxes and mutated via add/del/edit.
package bookmark

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fman/pkg/fuzzy"
)

const fuzzyResolveThreshold = 0.6

// Bookmark is one entry: Shortcut and Name are optional, Path is not.
type Bookmark struct {
	Shortcut string
	Name     string
	Path     string
}

// Store holds bookmarks in file order, file-backed.
type Store struct {
	mu    sync.Mutex
	marks []*Bookmark
	path  string
}

// New returns an empty store backed by file path (not yet loaded).
func New(path string) *Store {
	return &Store{path: path}
}

// Load (re)reads the backing file, accepting one bookmark per line in
// any of: "[SC]NAME:PATH", "NAME:PATH", "[SC]PATH", bare "/PATH".
// Lines starting with "#", blank lines, and lines with no "/" at all
// are ignored.
func (s *Store) Load() error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.marks = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var marks []*Bookmark
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "/") {
			continue
		}
		if b := parseLine(line); b != nil {
			marks = append(marks, b)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.marks = marks
	s.mu.Unlock()
	return nil
}

func parseLine(line string) *Bookmark {
	b := &Bookmark{}
	rest := line

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil
		}
		b.Shortcut = rest[1:end]
		rest = rest[end+1:]
	}

	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		name, path := rest[:idx], rest[idx+1:]
		if !strings.Contains(name, "/") && strings.Contains(path, "/") {
			b.Name = name
			b.Path = path
			return b
		}
	}

	if !strings.Contains(rest, "/") {
		return nil
	}
	b.Path = rest
	return b
}

// List returns a snapshot of all bookmarks, in file order.
func (s *Store) List() []*Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Bookmark, len(s.marks))
	copy(out, s.marks)
	return out
}

// Resolve looks a bookmark up by ELN (1-based), exact name, or exact
// shortcut, in that precedence order, and falls back to the closest
// fuzzy name/shortcut match when none of those hits.
func (s *Store) Resolve(token string) (*Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(token)
}

func (s *Store) resolveLocked(token string) (*Bookmark, bool) {
	if n, err := parseELN(token); err == nil {
		if n >= 1 && n <= len(s.marks) {
			return s.marks[n-1], true
		}
		return nil, false
	}
	for _, b := range s.marks {
		if b.Name != "" && b.Name == token {
			return b, true
		}
	}
	for _, b := range s.marks {
		if b.Shortcut != "" && b.Shortcut == token {
			return b, true
		}
	}
	return s.fuzzyResolveLocked(token)
}

// fuzzyResolveLocked is the last resort when no exact name or
// shortcut matches: the closest name/shortcut above the threshold
// wins, so a typo'd bookmark token still resolves.
func (s *Store) fuzzyResolveLocked(token string) (*Bookmark, bool) {
	if token == "" {
		return nil, false
	}
	matcher := fuzzy.NewMatcher(false, 0, fuzzyResolveThreshold)

	var best *Bookmark
	var bestScore float64
	for _, b := range s.marks {
		for _, candidate := range []string{b.Name, b.Shortcut} {
			if candidate == "" {
				continue
			}
			if m := matcher.Match(token, candidate); m.Confidence > bestScore {
				bestScore, best = m.Confidence, b
			}
		}
	}
	if best == nil || bestScore < fuzzyResolveThreshold {
		return nil, false
	}
	return best, true
}

func parseELN(s string) (int, error) {
	var n int
	if len(s) == 0 {
		return 0, fmt.Errorf("empty")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not numeric")
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// Add appends a new bookmark and persists the store. name and
// shortcut may be empty.
func (s *Store) Add(shortcut, name, path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("bookmark: path must be absolute: %s", path)
	}
	s.mu.Lock()
	s.marks = append(s.marks, &Bookmark{Shortcut: shortcut, Name: name, Path: path})
	s.mu.Unlock()
	return s.flush()
}

// Del removes the bookmark matching token (ELN, name, or shortcut).
func (s *Store) Del(token string) error {
	s.mu.Lock()
	b, ok := s.resolveLocked(token)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("bookmark: no such bookmark: %s", token)
	}
	kept := s.marks[:0:0]
	for _, m := range s.marks {
		if m != b {
			kept = append(kept, m)
		}
	}
	s.marks = kept
	s.mu.Unlock()
	return s.flush()
}

// Edit replaces the bookmark matching token with a new definition.
func (s *Store) Edit(token, shortcut, name, path string) error {
	s.mu.Lock()
	b, ok := s.resolveLocked(token)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("bookmark: no such bookmark: %s", token)
	}
	b.Shortcut, b.Name, b.Path = shortcut, name, path
	s.mu.Unlock()
	return s.flush()
}

func (s *Store) flush() error {
	s.mu.Lock()
	marks := make([]*Bookmark, len(s.marks))
	copy(marks, s.marks)
	path := s.path
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, b := range marks {
		line := b.Path
		if b.Name != "" {
			line = b.Name + ":" + b.Path
		}
		if b.Shortcut != "" {
			line = "[" + b.Shortcut + "]" + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
