package sorter

import (
	"testing"
	"time"

	"fman/internal/entry"
)

func mk(name string, size int64, dir bool) *entry.Entry {
	k := entry.KindRegular
	if dir {
		k = entry.KindDirectory
	}
	return &entry.Entry{Name: name, Size: size, Kind: k, Time: time.Unix(size, 0)}
}

func names(entries []*entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSortByName(t *testing.T) {
	es := []*entry.Entry{mk("c", 0, false), mk("a", 0, false), mk("b", 0, false)}
	Sort(es, Options{Method: Name})
	if got := names(es); got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("got %v", got)
	}
}

func TestSortLeadingDotIgnored(t *testing.T) {
	es := []*entry.Entry{mk(".b", 0, false), mk("a", 0, false)}
	Sort(es, Options{Method: Name})
	if got := names(es); got[0] != "a" || got[1] != ".b" {
		t.Fatalf("got %v, want a before .b", got)
	}
}

func TestSortFoldersFirst(t *testing.T) {
	es := []*entry.Entry{mk("zzz", 0, false), mk("aaa", 0, true)}
	Sort(es, Options{Method: Name, FoldersFirst: true})
	if got := names(es); got[0] != "aaa" {
		t.Fatalf("want directory first, got %v", got)
	}
}

func TestSortReverse(t *testing.T) {
	es := []*entry.Entry{mk("a", 0, false), mk("b", 0, false)}
	Sort(es, Options{Method: Name, Reverse: true})
	if got := names(es); got[0] != "b" {
		t.Fatalf("want b first under reverse, got %v", got)
	}
}

func TestSortBySize(t *testing.T) {
	es := []*entry.Entry{mk("big", 100, false), mk("small", 1, false)}
	Sort(es, Options{Method: Size})
	if got := names(es); got[0] != "small" {
		t.Fatalf("want small first, got %v", got)
	}
}

func TestVersionCompareNumeric(t *testing.T) {
	es := []*entry.Entry{mk("file10", 0, false), mk("file2", 0, false), mk("file1", 0, false)}
	Sort(es, Options{Method: Version})
	got := names(es)
	want := []string{"file1", "file2", "file10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSortCaseInsensitiveTie(t *testing.T) {
	es := []*entry.Entry{mk("B", 0, false), mk("a", 0, false)}
	Sort(es, Options{Method: Name, CaseInsensitive: true})
	if got := names(es); got[0] != "a" {
		t.Fatalf("want a before B case-insensitively, got %v", got)
	}
}
