package dispatch

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Env combines a Context and a Table into the parser.Resolver the
// expander needs; it is the only place dispatch reaches back across
// the parser/dispatch boundary.
type Env struct {
	Ctx   *Context
	Table *Table
}

func (e *Env) IsInternalCommand(name string) bool { return e.Table.IsInternalCommand(name) }

func (e *Env) ELN(n int) (string, bool) { return e.Ctx.ELN(n) }

func (e *Env) NumListed() int { return e.Ctx.NumListed() }

func (e *Env) IsLiteralInteger(tok string) bool { return e.Ctx.IsLiteralInteger(tok) }

func (e *Env) HasListedName(name string) bool { return e.Ctx.HasListedName(name) }

func (e *Env) Pinned() (string, bool) {
	p := e.Ctx.Workspaces.Pinned()
	return p, p != ""
}

func (e *Env) Bookmark(name string) (string, bool) {
	b, ok := e.Ctx.Bookmarks.Resolve(name)
	if !ok {
		return "", false
	}
	return b.Path, true
}

func (e *Env) Selection() []string { return e.Ctx.Selection.List() }

func (e *Env) Var(name string) (string, bool) { return e.Ctx.Workspaces.Var(name) }

func (e *Env) InStdinTempDir() bool { return e.Ctx.StdinTempDir }

func (e *Env) ResolveSymlink(path string) (string, error) { return os.Readlink(path) }

// Glob expands pattern against the current directory, dropping "."
// and "..". Relative patterns are resolved against the current
// directory before matching. Doublestar's "**" lets a single pattern
// recurse into subdirectories, beyond what filepath.Glob supports.
func (e *Env) Glob(pattern string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(e.Ctx.CWD, pattern)
	}
	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		base := filepath.Base(m)
		if base == "." || base == ".." {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (e *Env) ListedNames() []string { return e.Ctx.ListedNames() }

// skipGlobCommands names verbs whose "*" argument has its own meaning
// rather than a wildcard one (spec.md §4.8, pass g).
var skipGlobCommands = map[string]bool{
	"u": true, "untrash": true,
	"ds": true, "desel": true,
}

func (e *Env) SkipGlobForCommand(verb string) bool { return skipGlobCommands[verb] }

func (e *Env) TrashAsRm() bool { return e.Ctx.Config.Parser.TrashAsRm }

func (e *Env) ExpandBookmarks() bool { return e.Ctx.Config.Parser.ExpandBookmarks }

// numericLiteralCommands take bare integers as arguments literally
// rather than as ELNs (spec.md §4.8, pass f).
var numericLiteralCommands = map[string]bool{
	"mf": true, "st": true, "sort": true, "ws": true, "jo": true,
}

func (e *Env) NumericLiteralCommand(verb string) bool { return numericLiteralCommands[verb] }

// Shell runs payload through the system shell and returns its trimmed
// stdout, used for command/parameter substitution (spec.md §4.8, pass g).
func (e *Env) Shell(payload string) (string, error) {
	out, err := exec.Command("/bin/sh", "-c", payload).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}
