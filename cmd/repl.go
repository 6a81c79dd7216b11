package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"fman/internal/bookmark"
	"fman/internal/config"
	"fman/internal/dispatch"
	"fman/internal/jump"
	"fman/internal/layout"
	"fman/internal/logger"
	"fman/internal/msglog"
	"fman/internal/opener"
	"fman/internal/parser"
	"fman/internal/scanner"
	"fman/internal/selection"
	"fman/internal/sorter"
	"fman/internal/workspace"
)

// LineEditor supplies one line of input at a time; swappable so tests
// (or a richer front end) can replace the bufio-backed default.
type LineEditor interface {
	ReadLine() (string, error)
}

type scannerEditor struct{ sc *bufio.Scanner }

func (s *scannerEditor) ReadLine() (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}

// REPL owns the long-lived state for one running session: the
// dispatch table, its Context, and the input editor.
type REPL struct {
	ctx    *dispatch.Context
	table  *dispatch.Table
	editor LineEditor
	paths  config.Paths
	log    *logger.Logger
}

// NewREPL wires every subsystem from a resolved profile, the way the
// process boots once at startup (spec.md §4.11, §5 "init/teardown").
func NewREPL(profile string) (*REPL, error) {
	paths := config.ResolvePaths(profile)
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(paths.RCFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if debugFlag {
		level = "debug"
	}
	if err := logger.Initialize(logger.Config{
		Level:   level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.File == "",
	}); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log := logger.Get()

	sel := selection.New(paths.Selbox)
	if err := sel.Load(); err != nil {
		log.Warn("selection load failed", "error", err)
	}

	jdb, err := jump.Load(paths.Jump)
	if err != nil {
		jdb = jump.New()
		log.Warn("jump db load failed", "error", err)
	}
	if cfg.Jump.RankCeiling > 0 {
		jdb.Ceiling = cfg.Jump.RankCeiling
	}
	if cfg.Jump.RankFloor > 0 {
		jdb.Floor = cfg.Jump.RankFloor
	}

	bm := bookmark.New(paths.Bookmarks)
	if err := bm.Load(); err != nil {
		log.Warn("bookmarks load failed", "error", err)
	}

	ws := workspace.New(cfg.History.MaxEntries)
	if err := ws.LoadLastVisited(paths.LastFile); err != nil {
		log.Warn("last-visited load failed", "error", err)
	}
	if err := ws.LoadDirHistory(paths.DirHist); err != nil {
		log.Warn("dir history load failed", "error", err)
	}

	msgRing, err := msglog.Open(filepath.Join(paths.ProfileDir, "messages.db"), 500)
	if err != nil {
		return nil, fmt.Errorf("open message log: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if _, bound := ws.CurrentWorkspace(); bound != "" {
		cwd = bound
	}

	ctx := &dispatch.Context{
		CWD:        cwd,
		Selection:  sel,
		Jump:       jdb,
		Bookmarks:  bm,
		Workspaces: ws,
		Messages:   msgRing,
		Opener:     &opener.Resolver{MimeListPath: paths.MimeList, Cache: mustOpenerCache(paths)},
		Config:     cfg,
		Paths:      paths,
		Log:        log,
		SortOpt: sorter.Options{
			Method:          parseSortMethodOrDefault(cfg.Listing.SortMethod),
			Reverse:         cfg.Listing.SortReverse,
			FoldersFirst:    cfg.Listing.FoldersFirst,
			CaseInsensitive: cfg.Listing.CaseInsensitive,
		},
		ScanOpt: scanner.Options{
			ShowHidden: cfg.Listing.ShowHidden,
			Light:      cfg.Listing.LightMode,
			Counter:    true,
			IconsOn:    cfg.Listing.Icons,
		},
		MaxFiles: cfg.Listing.MaxFiles,
	}
	if err := ctx.Rescan(); err != nil {
		log.Warn("initial listing failed", "error", err)
	}

	table := dispatch.NewTable()

	return &REPL{
		ctx:    ctx,
		table:  table,
		editor: &scannerEditor{sc: bufio.NewScanner(os.Stdin)},
		paths:  paths,
		log:    log,
	}, nil
}

// SetInput swaps the REPL's line source, used by stdin mode once the
// original stdin has been consumed building the temp directory and
// further command input must come from the controlling terminal.
func (r *REPL) SetInput(rd io.Reader) {
	r.editor = &scannerEditor{sc: bufio.NewScanner(rd)}
}

func mustOpenerCache(paths config.Paths) *opener.Cache {
	cache, err := opener.OpenCache(filepath.Join(paths.ProfileDir, "opener-cache.db"))
	if err != nil {
		return nil
	}
	return cache
}

func parseSortMethodOrDefault(s string) sorter.Method {
	method, ok := sorter.ParseMethod(s)
	if !ok {
		return sorter.Name
	}
	return method
}

// Run drives the read-expand-dispatch loop until the user quits or
// input is exhausted.
func (r *REPL) Run() error {
	env := &dispatch.Env{Ctx: r.ctx, Table: r.table}

	for !r.ctx.Quit {
		r.printPrompt()

		line, err := r.editor.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.ctx.Workspaces.AddCommand(line)

		result, perr := parser.Expand(line, env)
		if perr != nil {
			fmt.Fprintln(os.Stderr, "fman:", perr.Error())
			continue
		}
		r.runResult(result)
	}

	return r.teardown()
}

func (r *REPL) runResult(result *parser.Result) {
	if result.IsVarAssignment {
		r.ctx.Workspaces.SetVar(result.VarName, result.VarValue)
		return
	}
	if result.ShellPassthrough {
		r.runShellLine(result.ShellLine)
		return
	}

	failed := false
	for _, seg := range result.Segments {
		if seg.Conditional && failed {
			continue
		}
		var err error
		if seg.External {
			err = r.runShellLine(seg.RawLine)
		} else {
			err = r.table.Dispatch(r.ctx, seg.Argv)
		}
		failed = err != nil
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}

	r.renderListing()
}

// renderListing prints the current entries in whichever view "ls"/
// "cl" last selected, colored via the scanner's cached color tags
// (spec.md §6 "ANSI SGR for colors throughout"). When the pager
// option is on and the content overflows the terminal, it hands the
// content to the interactive pager instead of printing it directly
// (spec.md §4.4).
func (r *REPL) renderListing() {
	w := termWidth()
	if w <= 0 {
		return
	}

	var content string
	if r.ctx.LongView {
		content = layout.RenderLong(r.ctx.Entries, w)
	} else {
		content = layout.Render(r.ctx.Entries, w, layout.ANSIFor)
	}

	h := termHeight()
	lines := strings.Count(content, "\n")
	if r.ctx.Config != nil && r.ctx.Config.Listing.Pager && h > 0 && lines > h-2 {
		if err := layout.Page(content, w, h); err != nil {
			fmt.Fprintln(os.Stderr, "fman: pager:", err.Error())
			fmt.Print(content)
		}
		return
	}
	fmt.Print(content)
}

func (r *REPL) runShellLine(line string) error {
	return dispatch.RunShell(r.ctx, line)
}

func (r *REPL) printPrompt() {
	fmt.Printf("[%s]> ", r.ctx.CWD)
}

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func termHeight() int {
	_, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || h <= 0 {
		return 24
	}
	return h
}

// teardown persists the workspace slots, directory history and jump
// database and closes the message ring and opener cache. When the
// session ended with "Q" it also writes the cd-on-quit marker: the
// final CWD, with no trailing newline, in $TMPDIR/fman-lastdir-<ppid>
// (the parent process's pid), for an outer shell function to read
// and cd to.
func (r *REPL) teardown() error {
	r.ctx.Workspaces.SaveLastVisited(r.paths.LastFile)
	r.ctx.Workspaces.SaveDirHistory(r.paths.DirHist)
	r.ctx.Jump.Save(r.paths.Jump, time.Now(), func(path string) jump.Bonus {
		return jump.Bonus{InWorkspace: r.ctx.Workspaces.InAnyWorkspace(path)}
	})
	if r.ctx.Messages != nil {
		r.ctx.Messages.Close()
	}
	if r.ctx.Opener != nil && r.ctx.Opener.Cache != nil {
		r.ctx.Opener.Cache.Close()
	}
	if r.ctx.QuitCD {
		return writeQuitCDMarker(r.ctx.CWD)
	}
	return nil
}

func writeQuitCDMarker(cwd string) error {
	marker := filepath.Join(os.TempDir(), fmt.Sprintf("fman-lastdir-%d", os.Getppid()))
	return os.WriteFile(marker, []byte(cwd), 0o600)
}

// StdinMode checks whether stdin is a non-TTY (spec.md §6): when true,
// the caller should build the ephemeral symlink directory before
// starting the REPL.
func StdinMode() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}
