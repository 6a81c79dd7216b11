// Package jump implements the frecency-ranked directory jump database
// (spec.md §4.6): visit counters, persistence-time rank recomputation,
// ceiling normalization, floor-based purge, and token queries.
package jump

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Entry is one visited directory and its visit statistics. Rank holds
// the value computed at the most recent persistence, per spec.md's
// "ranks are computed at persistence time, not query time" rule —
// interactive queries rank against the last save, not a live
// recomputation (open question resolved this way; see DESIGN.md).
type Entry struct {
	Path       string
	Visits     int
	FirstVisit time.Time
	LastVisit  time.Time
	Rank       float64
	Keep       bool
}

const (
	DefaultCeiling = 100000.0
	DefaultFloor   = 10.0

	bonusBookmarked   = 300.0
	bonusPinned       = 1000.0
	bonusInWorkspace  = 300.0
	bonusBasenameHit  = 300.0
)

// Bonus reports the persistence-time bonuses applicable to path, as
// three independent flags a caller derives from bookmarks/pinned
// dir/workspaces state.
type Bonus struct {
	Bookmarked  bool
	Pinned      bool
	InWorkspace bool
}

func (b Bonus) total() float64 {
	var sum float64
	if b.Bookmarked {
		sum += bonusBookmarked
	}
	if b.Pinned {
		sum += bonusPinned
	}
	if b.InWorkspace {
		sum += bonusInWorkspace
	}
	return sum
}

// DB is the in-memory jump table, keyed by absolute path.
type DB struct {
	mu      sync.Mutex
	entries map[string]*Entry
	Ceiling float64
	Floor   float64
}

// New returns an empty database with default ceiling and floor.
func New() *DB {
	return &DB{
		entries: make(map[string]*Entry),
		Ceiling: DefaultCeiling,
		Floor:   DefaultFloor,
	}
}

// Load reads a jump.cfm file: one "visits:first:last:path" line per
// entry, with a trailing "@<total_rank>" line ignored (the total is
// re-derived on the next Save, never trusted from disk). A missing
// file yields an empty, valid database.
func Load(path string) (*DB, error) {
	db := New()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "@") || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 4)
		if len(parts) != 4 {
			continue
		}
		visits, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		first, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		last, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		p := parts[3]
		db.entries[p] = &Entry{
			Path:       p,
			Visits:     visits,
			FirstVisit: time.Unix(first, 0),
			LastVisit:  time.Unix(last, 0),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return db, nil
}

// Visit records a successful directory change at time now: an
// existing entry has Visits incremented and LastVisit refreshed, a
// new one is appended with Visits=1 and FirstVisit=LastVisit=now
// (spec.md "Counters on visit").
func (db *DB) Visit(path string, now time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e, ok := db.entries[path]; ok {
		e.Visits++
		e.LastVisit = now
		return
	}
	db.entries[path] = &Entry{
		Path:       path,
		Visits:     1,
		FirstVisit: now,
		LastVisit:  now,
	}
}

// SetKeep sets or clears the keep flag protecting path from floor-based
// purge regardless of its computed rank.
func (db *DB) SetKeep(path string, keep bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if e, ok := db.entries[path]; ok {
		e.Keep = keep
	}
}

// Remove deletes path from the database outright.
func (db *DB) Remove(path string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.entries, path)
}

// List returns a snapshot of all entries, unordered.
func (db *DB) List() []*Entry {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*Entry, 0, len(db.entries))
	for _, e := range db.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out
}

func baseRank(e *Entry, now time.Time) float64 {
	daysSinceFirst := now.Sub(e.FirstVisit).Hours() / 24
	if daysSinceFirst < 0 {
		daysSinceFirst = 0
	}
	divisor := daysSinceFirst
	if divisor < 1 {
		divisor = 1
	}
	base := float64(e.Visits) * 100 / divisor

	hoursSinceLast := now.Sub(e.LastVisit).Hours()
	var mult float64
	switch {
	case hoursSinceLast <= 0:
		mult = 4
	case hoursSinceLast <= 24:
		mult = 2
	case hoursSinceLast <= 168:
		mult = 0.5
	default:
		mult = 0.25
	}
	return base * mult
}

// Recompute recalculates every entry's Rank as of now, applying
// bonusFor's per-path bonuses, normalizing against Ceiling if the
// total exceeds it, and dropping (from the in-memory set) any entry
// whose final rank falls below Floor and whose Keep flag is unset —
// mirroring the purge that Save performs on the persisted file.
func (db *DB) Recompute(now time.Time, bonusFor func(path string) Bonus) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var sum float64
	for _, e := range db.entries {
		e.Rank = baseRank(e, now) + bonusFor(e.Path).total()
		sum += e.Rank
	}

	if sum > db.Ceiling {
		factor := sum/db.Ceiling + 1
		for _, e := range db.entries {
			e.Rank /= factor
		}
	}

	for p, e := range db.entries {
		if e.Rank < db.Floor && !e.Keep {
			delete(db.entries, p)
		}
	}
}

// Save recomputes ranks (see Recompute) and writes the jump.cfm file,
// one "visits:first:last:path" line per surviving entry plus a
// trailing "@<total_rank>" line.
func (db *DB) Save(path string, now time.Time, bonusFor func(path string) Bonus) error {
	db.Recompute(now, bonusFor)

	db.mu.Lock()
	entries := make([]*Entry, 0, len(db.entries))
	for _, e := range db.entries {
		entries = append(entries, e)
	}
	db.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var total float64
	for _, e := range entries {
		total += e.Rank
		if _, err := fmt.Fprintf(w, "%d:%d:%d:%s\n", e.Visits, e.FirstVisit.Unix(), e.LastVisit.Unix(), e.Path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "@%d\n", int64(total)); err != nil {
		return err
	}
	return w.Flush()
}

// Mode selects which candidates a Query considers.
type Mode int

const (
	ModeAll        Mode = iota // j
	ModeAncestors              // jp: only ancestors of cwd
	ModeDescendants            // jc: only descendants of cwd
)

// Query filters entries whose path contains every token in tokens (in
// order, each narrowing the previous result), excludes cwd itself,
// restricts to ancestors/descendants per mode, and adds the
// query-time-only basename-match bonus before ranking. It returns
// candidates sorted best-first; Save's persisted Rank is the baseline
// (spec.md: ranks reflect the last write, not a live recompute).
func (db *DB) Query(tokens []string, caseSensitive bool, cwd string, mode Mode) []*Entry {
	db.mu.Lock()
	candidates := make([]*Entry, 0, len(db.entries))
	for _, e := range db.entries {
		if e.Path == cwd {
			continue
		}
		candidates = append(candidates, e)
	}
	db.mu.Unlock()

	for _, tok := range tokens {
		needle := tok
		filtered := candidates[:0:0]
		for _, e := range candidates {
			hay := e.Path
			n := needle
			if !caseSensitive {
				hay = strings.ToLower(hay)
				n = strings.ToLower(n)
			}
			if strings.Contains(hay, n) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
	}

	switch mode {
	case ModeAncestors:
		candidates = filterPaths(candidates, func(p string) bool { return isAncestor(p, cwd) })
	case ModeDescendants:
		candidates = filterPaths(candidates, func(p string) bool { return isAncestor(cwd, p) })
	}

	type scored struct {
		e     *Entry
		score float64
	}
	last := ""
	if len(tokens) > 0 {
		last = tokens[len(tokens)-1]
	}
	scoredList := make([]scored, len(candidates))
	for i, e := range candidates {
		score := e.Rank
		if last != "" {
			base := filepath.Base(e.Path)
			hay, n := base, last
			if !caseSensitive {
				hay, n = strings.ToLower(hay), strings.ToLower(n)
			}
			if strings.Contains(hay, n) {
				score += bonusBasenameHit
			}
		}
		scoredList[i] = scored{e, score}
	}
	sort.SliceStable(scoredList, func(i, j int) bool { return scoredList[i].score > scoredList[j].score })

	out := make([]*Entry, len(scoredList))
	for i, s := range scoredList {
		out[i] = s.e
	}
	return out
}

func filterPaths(entries []*Entry, keep func(string) bool) []*Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if keep(e.Path) {
			out = append(out, e)
		}
	}
	return out
}

// isAncestor reports whether candidate is an ancestor of (or equal
// to) target, i.e. target == candidate or target is under candidate.
func isAncestor(candidate, target string) bool {
	if candidate == target {
		return true
	}
	rel, err := filepath.Rel(candidate, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}
