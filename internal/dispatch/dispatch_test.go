package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"fman/internal/bookmark"
	"fman/internal/config"
	"fman/internal/jump"
	"fman/internal/msglog"
	"fman/internal/opener"
	"fman/internal/scanner"
	"fman/internal/selection"
	"fman/internal/sorter"
	"fman/internal/workspace"
)

func newTestContext(t *testing.T) (*Context, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}

	msgRing, err := msglog.Open(filepath.Join(dir, "msg.db"), 100)
	if err != nil {
		t.Fatalf("open msglog: %v", err)
	}
	t.Cleanup(func() { msgRing.Close() })

	ctx := &Context{
		CWD:        dir,
		Selection:  selection.New(filepath.Join(dir, "selbox")),
		Jump:       jump.New(),
		Bookmarks:  bookmark.New(filepath.Join(dir, "bookmarks.cfm")),
		Workspaces: workspace.New(100),
		Messages:   msgRing,
		Opener:     &opener.Resolver{MimeListPath: filepath.Join(dir, "mimelist.cfm")},
		Config:     &config.Config{},
		SortOpt:    sorter.Options{Method: sorter.Name},
		ScanOpt:    scanner.Options{},
	}
	if err := ctx.Rescan(); err != nil {
		t.Fatalf("initial rescan: %v", err)
	}
	return ctx, dir
}

func TestTableDispatchUnknownCommandIsInputError(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := NewTable()
	err := table.Dispatch(ctx, []string{"sleect"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	cmdErr, ok := err.(*CmdError)
	if !ok || cmdErr.Kind != KindInput {
		t.Fatalf("expected KindInput CmdError, got %#v", err)
	}
}

func TestSelectAndDeselectRoundTrip(t *testing.T) {
	ctx, dir := newTestContext(t)
	table := NewTable()

	target := filepath.Join(dir, "a.txt")
	if err := table.Dispatch(ctx, []string{"s", target}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := ctx.Selection.List(); len(got) != 1 || got[0] != target {
		t.Fatalf("selection after add = %v, want [%s]", got, target)
	}

	if err := table.Dispatch(ctx, []string{"ds", "1"}); err != nil {
		t.Fatalf("deselect: %v", err)
	}
	if got := ctx.Selection.List(); len(got) != 0 {
		t.Fatalf("selection after deselect = %v, want empty", got)
	}
}

func TestCdUpdatesEntriesAndJumpDB(t *testing.T) {
	ctx, dir := newTestContext(t)
	table := NewTable()

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := table.Dispatch(ctx, []string{"cd", sub}); err != nil {
		t.Fatalf("cd: %v", err)
	}
	if ctx.CWD != sub {
		t.Fatalf("CWD = %q, want %q", ctx.CWD, sub)
	}
	if len(ctx.Entries) != 0 {
		t.Fatalf("expected empty listing for new dir, got %d entries", len(ctx.Entries))
	}

	entries := ctx.Jump.List()
	found := false
	for _, e := range entries {
		if e.Path == sub {
			found = true
		}
	}
	if !found {
		t.Fatalf("jump db missing visited path %s: %v", sub, entries)
	}
}

func TestBackForthMoveCWD(t *testing.T) {
	ctx, dir := newTestContext(t)
	table := NewTable()

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := table.Dispatch(ctx, []string{"cd", sub}); err != nil {
		t.Fatalf("cd: %v", err)
	}
	if err := table.Dispatch(ctx, []string{"back"}); err != nil {
		t.Fatalf("back: %v", err)
	}
	if ctx.CWD != dir {
		t.Fatalf("CWD after back = %q, want %q", ctx.CWD, dir)
	}
	if err := table.Dispatch(ctx, []string{"forth"}); err != nil {
		t.Fatalf("forth: %v", err)
	}
	if ctx.CWD != sub {
		t.Fatalf("CWD after forth = %q, want %q", ctx.CWD, sub)
	}
}

func TestQuitSetsFlags(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := NewTable()
	if err := table.Dispatch(ctx, []string{"Q"}); err != nil {
		t.Fatalf("Q: %v", err)
	}
	if !ctx.Quit || !ctx.QuitCD {
		t.Fatalf("Quit=%v QuitCD=%v, want both true", ctx.Quit, ctx.QuitCD)
	}
}

func TestTrashAndUntrashRoundTrip(t *testing.T) {
	ctx, dir := newTestContext(t)
	ctx.Paths.ProfileDir = filepath.Join(dir, "profile")
	table := NewTable()

	target := filepath.Join(dir, "a.txt")
	if err := table.Dispatch(ctx, []string{"t", target}); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be gone after trash", target)
	}
	trashedPath := filepath.Join(ctx.Paths.ProfileDir, "trash", "files", "a.txt")
	if _, err := os.Stat(trashedPath); err != nil {
		t.Fatalf("expected trashed file at %s: %v", trashedPath, err)
	}

	if err := table.Dispatch(ctx, []string{"u", "a.txt"}); err != nil {
		t.Fatalf("untrash: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected %s restored after untrash: %v", target, err)
	}
}
