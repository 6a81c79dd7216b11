package bookmark

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLineSyntaxes(t *testing.T) {
	cases := []struct {
		line string
		want *Bookmark
	}{
		{"[w]work:/home/u/work", &Bookmark{Shortcut: "w", Name: "work", Path: "/home/u/work"}},
		{"work:/home/u/work", &Bookmark{Name: "work", Path: "/home/u/work"}},
		{"[w]/home/u/work", &Bookmark{Shortcut: "w", Path: "/home/u/work"}},
		{"/home/u/work", &Bookmark{Path: "/home/u/work"}},
	}
	for _, c := range cases {
		got := parseLine(c.line)
		if got == nil {
			t.Fatalf("%q: parse failed", c.line)
		}
		if got.Shortcut != c.want.Shortcut || got.Name != c.want.Name || got.Path != c.want.Path {
			t.Fatalf("%q: got %+v, want %+v", c.line, got, c.want)
		}
	}
}

func TestParseLineRejectsNoPath(t *testing.T) {
	if b := parseLine("justaname"); b != nil {
		t.Fatalf("expected nil for line without '/', got %+v", b)
	}
}

func TestLoadSkipsCommentsAndBlank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.cfm")
	content := "# a comment\n\n/home/u/a\nwork:/home/u/work\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if got := s.List(); len(got) != 2 {
		t.Fatalf("want 2 bookmarks, got %d", len(got))
	}
}

func TestAddDelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.cfm")
	s := New(path)

	if err := s.Add("w", "work", "/home/u/work"); err != nil {
		t.Fatal(err)
	}
	s2 := New(path)
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s2.Resolve("work"); !ok {
		t.Fatalf("expected to resolve 'work' after reload")
	}

	if err := s2.Del("work"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s2.Resolve("work"); ok {
		t.Fatalf("expected 'work' to be gone after Del")
	}
}

func TestResolveByELN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.cfm")
	s := New(path)
	if err := s.Add("", "", "/a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("", "", "/b"); err != nil {
		t.Fatal(err)
	}

	b, ok := s.Resolve("2")
	if !ok || b.Path != "/b" {
		t.Fatalf("ELN 2 should resolve to /b, got %+v", b)
	}
}

func TestResolveFuzzyFallsBackOnTypo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.cfm")
	s := New(path)
	if err := s.Add("", "projects", "/home/u/projects"); err != nil {
		t.Fatal(err)
	}

	b, ok := s.Resolve("projcts")
	if !ok || b.Path != "/home/u/projects" {
		t.Fatalf("expected typo'd name to fuzzy-resolve, got %+v ok=%v", b, ok)
	}

	if _, ok := s.Resolve("completely-unrelated-token"); ok {
		t.Fatal("expected no fuzzy match for an unrelated token")
	}
}
