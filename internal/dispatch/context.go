package dispatch

import (
	"fmt"
	"os"
	"time"

	"fman/internal/bookmark"
	"fman/internal/config"
	"fman/internal/entry"
	"fman/internal/jump"
	"fman/internal/logger"
	"fman/internal/msglog"
	"fman/internal/opener"
	"fman/internal/scanner"
	"fman/internal/selection"
	"fman/internal/sorter"
	"fman/internal/workspace"
)

// Context is the long-lived, process-wide value threaded through
// every dispatch call: the current listing, the shared stores, and
// the config/paths that govern them. No handler holds a reference to
// another handler's state; everything routes through this value
// (spec.md §3 "Ownership").
type Context struct {
	CWD     string
	Entries []*entry.Entry

	Selection  *selection.Store
	Jump       *jump.DB
	Bookmarks  *bookmark.Store
	Workspaces *workspace.Manager
	Messages   *msglog.Ring
	Opener     *opener.Resolver

	Config *config.Config
	Paths  config.Paths
	Log    *logger.Logger

	SortOpt  sorter.Options
	ScanOpt  scanner.Options
	MaxFiles int // 0 = unbounded; truncates the listing after each scan

	LongView bool // "ls" switches the next renders to the long view; "cl"/"columns" switches back

	ExitCode int
	Quit     bool
	QuitCD   bool // "Q": write the cd-on-quit marker for an outer shell function

	StdinTempDir bool // true while CWD is the ephemeral stdin-mode listing (spec.md §6)
}

// ELN resolves a 1-based entry list number against the current
// listing.
func (c *Context) ELN(n int) (string, bool) {
	if n < 1 || n > len(c.Entries) {
		return "", false
	}
	return c.Entries[n-1].Path, true
}

func (c *Context) NumListed() int { return len(c.Entries) }

func (c *Context) IsLiteralInteger(tok string) bool {
	for _, e := range c.Entries {
		if e.Name == tok {
			return true
		}
	}
	return false
}

func (c *Context) HasListedName(name string) bool {
	for _, e := range c.Entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

func (c *Context) ListedNames() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

// Rescan re-lists CWD and re-sorts, the "re-list" every command that
// mutates the directory must trigger before the next prompt.
func (c *Context) Rescan() error {
	entries, err := scanner.Scan(c.CWD, c.ScanOpt)
	if err != nil {
		return IOError(c.CWD, err)
	}
	sorter.Sort(entries, c.SortOpt)
	if c.MaxFiles > 0 && len(entries) > c.MaxFiles {
		entries = entries[:c.MaxFiles]
	}
	c.Entries = entries
	return nil
}

// Chdir changes the current directory, records it in directory
// history and the jump database, and re-lists.
func (c *Context) Chdir(path string) error {
	if err := os.Chdir(path); err != nil {
		return IOError(path, err)
	}
	c.CWD = path
	c.Workspaces.Visit(path)
	c.Jump.Visit(path, time.Now())
	return c.Rescan()
}

func (c *Context) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Messages != nil {
		c.Messages.Add(msglog.Warning, msg)
	}
	if c.Log != nil {
		c.Log.Warn(msg)
	}
}
