package opener

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMimeListParsesExtensionAndMimeKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mimelist.cfm")
	content := "# comment\n\nE:^txt$=cat;less\n^image/.*=feh;xdg-open\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadMimeList(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 2 {
		t.Fatalf("want 2 rules, got %d", len(rules))
	}
	if !rules[0].ByExtension || !rules[0].Pattern.MatchString("txt") {
		t.Fatalf("first rule should match extension txt: %+v", rules[0])
	}
	if rules[1].ByExtension || !rules[1].Pattern.MatchString("image/png") {
		t.Fatalf("second rule should match mime image/png: %+v", rules[1])
	}
}

func TestExtension(t *testing.T) {
	if got := Extension("/a/b/file.TAR.GZ"); got != "GZ" {
		t.Fatalf("got %q", got)
	}
	if got := Extension("/a/b/.hidden"); got != "" {
		t.Fatalf("leading-dot-only name should have no extension, got %q", got)
	}
	if got := Extension("/a/b/noext"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveFindsFirstExistingApp(t *testing.T) {
	dir := t.TempDir()
	mimePath := filepath.Join(dir, "mimelist.cfm")
	content := "E:^txt$=definitely-not-a-real-binary-xyz;cat\n"
	if err := os.WriteFile(mimePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(target, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{MimeListPath: mimePath}
	res, err := r.Resolve(target)
	if err != nil {
		t.Fatal(err)
	}
	if res.App != "cat" {
		t.Fatalf("want fallback to cat, got %q", res.App)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	mtime := time.Unix(1_700_000_000, 0)
	if err := c.Put("/a/b.txt", mtime, "cat", "text/plain", "txt"); err != nil {
		t.Fatal(err)
	}
	app, mime, ext, ok := c.Get("/a/b.txt", mtime)
	if !ok || app != "cat" || mime != "text/plain" || ext != "txt" {
		t.Fatalf("got app=%q mime=%q ext=%q ok=%v", app, mime, ext, ok)
	}

	if _, _, _, ok := c.Get("/a/b.txt", mtime.Add(time.Second)); ok {
		t.Fatalf("cache should miss once mime list mtime changes")
	}
}
