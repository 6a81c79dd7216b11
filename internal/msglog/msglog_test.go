package msglog

import (
	"path/filepath"
	"testing"
)

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()
	r, err := Open(filepath.Join(dir, "msg.db"), 10)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.Add(Warning, "disk nearly full"); err != nil {
		t.Fatal(err)
	}
	msgs, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Text != "disk nearly full" {
		t.Fatalf("got %+v", msgs)
	}
}

func TestUnreadIndicatorReflectsHighestSeverity(t *testing.T) {
	dir := t.TempDir()
	r, err := Open(filepath.Join(dir, "msg.db"), 10)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.Add(Notice, "n1"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(Error, "e1"); err != nil {
		t.Fatal(err)
	}

	ind, err := r.UnreadIndicator()
	if err != nil {
		t.Fatal(err)
	}
	if ind != "E" {
		t.Fatalf("want E, got %q", ind)
	}
}

func TestCapacityEviction(t *testing.T) {
	dir := t.TempDir()
	r, err := Open(filepath.Join(dir, "msg.db"), 2)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for i := 0; i < 5; i++ {
		if err := r.Add(Notice, "m"); err != nil {
			t.Fatal(err)
		}
	}
	msgs, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 {
		t.Fatalf("want capacity-bounded to 2, got %d", len(msgs))
	}
}
