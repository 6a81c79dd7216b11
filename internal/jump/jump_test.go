package jump

import (
	"path/filepath"
	"testing"
	"time"
)

func noBonus(string) Bonus { return Bonus{} }

func TestVisitCreatesAndIncrements(t *testing.T) {
	db := New()
	now := time.Unix(1_700_000_000, 0)
	db.Visit("/a", now)
	db.Visit("/a", now.Add(time.Hour))

	es := db.List()
	if len(es) != 1 {
		t.Fatalf("want 1 entry, got %d", len(es))
	}
	if es[0].Visits != 2 {
		t.Fatalf("want 2 visits, got %d", es[0].Visits)
	}
	if !es[0].FirstVisit.Equal(now) {
		t.Fatalf("first visit should not change on repeat visit")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jump.cfm")

	db := New()
	now := time.Unix(1_700_000_000, 0)
	db.Visit("/a", now)
	db.Visit("/b", now)
	if err := db.Save(path, now, noBonus); err != nil {
		t.Fatal(err)
	}

	db2, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(db2.List()) != 2 {
		t.Fatalf("want 2 entries after reload, got %d", len(db2.List()))
	}
}

func TestFirstVisitNeverAfterLastVisit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jump.cfm")
	now := time.Unix(1_700_000_000, 0)

	db := New()
	db.Visit("/a", now)
	db.Visit("/a", now.Add(10*time.Minute))
	if err := db.Save(path, now.Add(10*time.Minute), noBonus); err != nil {
		t.Fatal(err)
	}
	for _, e := range db.List() {
		if e.FirstVisit.After(e.LastVisit) {
			t.Fatalf("first_visit must not be after last_visit")
		}
	}
}

func TestCeilingNormalization(t *testing.T) {
	db := New()
	db.Ceiling = 100
	now := time.Unix(1_700_000_000, 0)
	for i := 0; i < 5; i++ {
		db.Visit(filepath.Join("/dir", string(rune('a'+i))), now)
	}
	db.Recompute(now, func(string) Bonus { return Bonus{Bookmarked: true, Pinned: true, InWorkspace: true} })

	var sum float64
	for _, e := range db.List() {
		sum += e.Rank
	}
	if sum > db.Ceiling+1e-6 {
		t.Fatalf("sum of ranks %v exceeds ceiling %v", sum, db.Ceiling)
	}
}

func TestFloorPurgeRespectsKeepFlag(t *testing.T) {
	db := New()
	db.Floor = 1_000_000 // force every entry below floor
	now := time.Unix(1_700_000_000, 0)
	db.Visit("/keep", now)
	db.Visit("/drop", now)
	db.SetKeep("/keep", true)

	db.Recompute(now, noBonus)

	paths := map[string]bool{}
	for _, e := range db.List() {
		paths[e.Path] = true
	}
	if !paths["/keep"] {
		t.Fatalf("kept entry should survive purge")
	}
	if paths["/drop"] {
		t.Fatalf("unkept low-rank entry should be purged")
	}
}

func TestQueryExcludesCWDAndNarrowsByToken(t *testing.T) {
	db := New()
	now := time.Unix(1_700_000_000, 0)
	db.Visit("/home/user/work/proj", now)
	db.Visit("/home/user/docs", now)
	db.Visit("/home/user", now)
	if err := db.Save(filepath.Join(t.TempDir(), "jump.cfm"), now, noBonus); err != nil {
		t.Fatal(err)
	}

	got := db.Query([]string{"work"}, false, "/home/user", ModeAll)
	if len(got) != 1 || got[0].Path != "/home/user/work/proj" {
		t.Fatalf("want only /home/user/work/proj, got %v", got)
	}
}

func TestQueryAncestorsAndDescendants(t *testing.T) {
	db := New()
	now := time.Unix(1_700_000_000, 0)
	db.Visit("/home/user", now)
	db.Visit("/home/user/proj", now)
	db.Visit("/home/other", now)
	if err := db.Save(filepath.Join(t.TempDir(), "jump.cfm"), now, noBonus); err != nil {
		t.Fatal(err)
	}

	desc := db.Query(nil, false, "/home/user", ModeDescendants)
	for _, e := range desc {
		if e.Path != "/home/user/proj" {
			t.Fatalf("descendant query leaked non-descendant: %v", e.Path)
		}
	}

	anc := db.Query(nil, false, "/home/user/proj", ModeAncestors)
	found := false
	for _, e := range anc {
		if e.Path == "/home/user" {
			found = true
		}
		if e.Path == "/home/other" {
			t.Fatalf("ancestor query leaked unrelated path")
		}
	}
	if !found {
		t.Fatalf("ancestor query should include /home/user")
	}
}
