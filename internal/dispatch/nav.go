package dispatch

import (
	"os/exec"
	"path/filepath"

	"fman/internal/config"
	"fman/internal/entry"
	"fman/internal/jump"
	"fman/internal/pathutil"
)

func cmdCd(ctx *Context, argv []string) error {
	target := ctx.Workspaces.Pinned()
	if len(argv) > 1 {
		target = argv[1]
	}
	if target == "" {
		return InputError("cd", "no target directory")
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(ctx.CWD, target)
	}
	return ctx.Chdir(target)
}

func cmdBack(ctx *Context, argv []string) error {
	p, ok := ctx.Workspaces.Back()
	if !ok {
		return InputError("b", "no previous directory")
	}
	return ctx.chdirNoHistory(p)
}

func cmdForth(ctx *Context, argv []string) error {
	p, ok := ctx.Workspaces.Forth()
	if !ok {
		return InputError("f", "no next directory")
	}
	return ctx.chdirNoHistory(p)
}

// chdirNoHistory changes directory without pushing a new directory
// history entry (back/forth move the cursor, they don't mutate the
// list, per spec.md §3), but still counts as a visit for frecency.
func (c *Context) chdirNoHistory(path string) error {
	if err := osChdir(path); err != nil {
		return IOError(path, err)
	}
	c.CWD = path
	c.Jump.Visit(path, nowFn())
	return c.Rescan()
}

func cmdWorkspace(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		n, p := ctx.Workspaces.CurrentWorkspace()
		ctx.warn("workspace %d: %s", n, p)
		return nil
	}
	n, err := atoiStrict(argv[1])
	if err != nil {
		return InputError("ws", "not a workspace number: "+argv[1])
	}
	path, err := ctx.Workspaces.SwitchWorkspace(n)
	if err != nil {
		return InputError("ws", err.Error())
	}
	if path == "" {
		return nil
	}
	return ctx.chdirNoHistory(path)
}

func cmdPinnedJump(ctx *Context, argv []string) error {
	p := ctx.Workspaces.Pinned()
	if p == "" {
		return InputError(",", "no pinned directory")
	}
	return ctx.Chdir(p)
}

func cmdPin(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		ctx.Workspaces.Pin(ctx.CWD)
		return nil
	}
	ctx.Workspaces.Pin(argv[1])
	return nil
}

func cmdUnpin(ctx *Context, argv []string) error {
	ctx.Workspaces.Unpin()
	return nil
}

func cmdJump(mode jump.Mode) Handler {
	return func(ctx *Context, argv []string) error {
		tokens := argv[1:]
		candidates := ctx.Jump.Query(tokens, false, ctx.CWD, mode)
		if len(candidates) == 0 {
			return InputError("j", "no matching directory")
		}
		return ctx.Chdir(candidates[0].Path)
	}
}

func cmdJumpOrdinal(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("jo", "missing ordinal")
	}
	n, err := atoiStrict(argv[1])
	if err != nil || n < 1 {
		return InputError("jo", "invalid ordinal: "+argv[1])
	}
	candidates := ctx.Jump.Query(nil, false, ctx.CWD, jump.ModeAll)
	if n > len(candidates) {
		return InputError("jo", "no such entry")
	}
	return ctx.Chdir(candidates[n-1].Path)
}

func cmdJumpList(ctx *Context, argv []string) error {
	tokens := argv[1:]
	candidates := ctx.Jump.Query(tokens, false, ctx.CWD, jump.ModeAll)
	for i, c := range candidates {
		ctx.warn("%d %s", i+1, c.Path)
	}
	return nil
}

// cmdJumpEdit implements "je": opens the jump database file in
// $EDITOR and reloads it, replacing the in-memory database (spec.md
// §4.6).
func cmdJumpEdit(ctx *Context, argv []string) error {
	run := func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		return cmd.Run()
	}
	if err := config.Edit(ctx.Paths.Jump, run); err != nil {
		return IOError("je", err)
	}
	db, err := jump.Load(ctx.Paths.Jump)
	if err != nil {
		return IOError("je", err)
	}
	ctx.Jump = db
	return nil
}

// cmdDirHistory implements "bh"/"fh": lists the directory history in
// visit order.
func cmdDirHistory(ctx *Context, argv []string) error {
	for i, p := range ctx.Workspaces.DirHistory() {
		ctx.warn("%d %s", i+1, p)
	}
	return nil
}

// cmdProperties implements "p"/"pr"/"pp": prints the long-view fields
// (spec.md §4.4) for a single target, preferring the cached listing
// entry so color/ACL/icon classification already done by the scanner
// isn't redone here.
func cmdProperties(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("p", "no target given")
	}
	target := pathutil.Dequote(resolveArg(ctx, argv[1]))

	var e *entry.Entry
	for _, cand := range ctx.Entries {
		if cand.Path == target {
			e = cand
			break
		}
	}
	if e == nil {
		built, err := statEntry(target)
		if err != nil {
			return IOError(target, err)
		}
		e = built
	}

	typeChar := pathutil.TypeChar(e.IsDir(), e.Kind == entry.KindSymlink,
		e.Kind == entry.KindSocket, e.Kind == entry.KindFifo,
		e.Kind == entry.KindBlock, e.Kind == entry.KindChar)
	perms := pathutil.PermTriads(e.Mode, e.Setuid, e.Setgid, e.Sticky)
	acl := ""
	if e.HasACL {
		acl = "+"
	}
	ctx.warn("%s: %c%s%s %d %d:%d %s %s",
		e.Name, typeChar, perms, acl, e.LinkCount, e.UID, e.GID,
		e.Time.Format("2006-01-02 15:04"), pathutil.HumanSize(e.Size))
	return nil
}
