package workspace

import (
	"path/filepath"
	"testing"
)

func TestSwitchWorkspaceInheritsPath(t *testing.T) {
	m := New(100)
	m.BindCurrent("/home/u")
	path, err := m.SwitchWorkspace(1)
	if err != nil {
		t.Fatal(err)
	}
	if path != "/home/u" {
		t.Fatalf("unbound slot should inherit current path, got %q", path)
	}
}

func TestVisitTruncatesForwardHistory(t *testing.T) {
	m := New(100)
	m.Visit("/a")
	m.Visit("/b")
	m.Visit("/c")
	if _, ok := m.Back(); !ok {
		t.Fatal("expected back to succeed")
	}
	m.Visit("/d") // truncates /c, appends /d after /b

	hist := m.DirHistory()
	want := []string{"/a", "/b", "/d"}
	if len(hist) != len(want) {
		t.Fatalf("got %v, want %v", hist, want)
	}
	for i := range want {
		if hist[i] != want[i] {
			t.Fatalf("got %v, want %v", hist, want)
		}
	}
}

func TestBackForthDoNotMutateList(t *testing.T) {
	m := New(100)
	m.Visit("/a")
	m.Visit("/b")
	before := m.DirHistory()

	if p, ok := m.Back(); !ok || p != "/a" {
		t.Fatalf("back should land on /a, got %q ok=%v", p, ok)
	}
	if p, ok := m.Forth(); !ok || p != "/b" {
		t.Fatalf("forth should land on /b, got %q ok=%v", p, ok)
	}
	after := m.DirHistory()
	if len(before) != len(after) {
		t.Fatalf("back/forth mutated history list: %v -> %v", before, after)
	}
}

func TestVisitSuppressesConsecutiveDuplicate(t *testing.T) {
	m := New(100)
	m.Visit("/a")
	m.Visit("/a")
	if got := m.DirHistory(); len(got) != 1 {
		t.Fatalf("consecutive duplicate should be suppressed, got %v", got)
	}
}

func TestCommandHistoryBounded(t *testing.T) {
	m := New(3)
	for i := 0; i < 5; i++ {
		m.AddCommand(string(rune('a' + i)))
	}
	got := m.CommandHistory()
	if len(got) != 3 {
		t.Fatalf("want bounded to 3, got %v", got)
	}
	if got[0] != "c" {
		t.Fatalf("want oldest entries dropped, got %v", got)
	}
}

func TestIsVarAssignment(t *testing.T) {
	name, value, ok := IsVarAssignment("NAME=/some/path")
	if !ok || name != "NAME" || value != "/some/path" {
		t.Fatalf("got name=%q value=%q ok=%v", name, value, ok)
	}
	if _, _, ok := IsVarAssignment("1NAME=x"); ok {
		t.Fatalf("name starting with digit should be rejected")
	}
	if _, _, ok := IsVarAssignment("NA ME=x"); ok {
		t.Fatalf("name with space should be rejected")
	}
}

func TestLastVisitedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".last")

	m := New(100)
	m.BindCurrent("/home/u")
	if _, err := m.SwitchWorkspace(1); err != nil {
		t.Fatal(err)
	}
	m.BindCurrent("/home/u/work")
	if err := m.SaveLastVisited(path); err != nil {
		t.Fatal(err)
	}

	m2 := New(100)
	if err := m2.LoadLastVisited(path); err != nil {
		t.Fatal(err)
	}
	cur, p := m2.CurrentWorkspace()
	if cur != 1 || p != "/home/u/work" {
		t.Fatalf("got current=%d path=%q", cur, p)
	}
}
