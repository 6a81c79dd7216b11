package dispatch

import (
	"os"
	"os/exec"

	"fman/internal/msglog"
)

const versionString = "fman 0.1.0"

// cmdHistory implements "history": lists the bounded command history.
func cmdHistory(ctx *Context, argv []string) error {
	for i, l := range ctx.Workspaces.CommandHistory() {
		ctx.warn("%d %s", i+1, l)
	}
	return nil
}

// cmdLog implements "log": an alias for "msg" that only shows errors
// and warnings, matching the narrower, log-focused verb name.
func cmdLog(ctx *Context, argv []string) error {
	msgs, err := ctx.Messages.List()
	if err != nil {
		return IOError("log", err)
	}
	for _, m := range msgs {
		if m.Level == msglog.Notice {
			continue
		}
		ctx.warn("[%s] %s", m.Level.Letter(), m.Text)
	}
	return nil
}

// cmdMsg implements "msg": "msg" lists every message and marks them
// read; "msg clear" marks them all read without listing them. The
// messages stay in the ring either way.
func cmdMsg(ctx *Context, argv []string) error {
	if len(argv) > 1 && argv[1] == "clear" {
		return ctx.Messages.MarkAllRead()
	}
	msgs, err := ctx.Messages.List()
	if err != nil {
		return IOError("msg", err)
	}
	for _, m := range msgs {
		ctx.warn("[%s] %s", m.Level.Letter(), m.Text)
	}
	return ctx.Messages.MarkAllRead()
}

// cmdCmd implements "cmd": runs the remaining argv as an external
// command line, bypassing internal dispatch entirely.
func cmdCmd(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("cmd", "no command given")
	}
	cmd := exec.Command(argv[1], argv[2:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return ChildExitError(argv[1], exitErr.ExitCode())
		}
		return ChildCrashError(argv[1], err)
	}
	return nil
}

// cmdHelp implements "help": a short summary of verb categories.
func cmdHelp(ctx *Context, argv []string) error {
	ctx.warn("help: navigation, listing, selection, file-ops, config, meta - see 'cmd' for external execution")
	return nil
}

// cmdVer implements "ver": reports the build version string.
func cmdVer(ctx *Context, argv []string) error {
	ctx.warn(versionString)
	return nil
}

// cmdColors implements "cc": reports the active color scheme
// directory; color scheme selection is read from disk, not mutated
// from the REPL.
func cmdColors(ctx *Context, argv []string) error {
	ctx.warn("colors: %s", ctx.Paths.ColorsDir)
	return nil
}

// cmdMountpoints implements "mp": lists mounted filesystems by
// shelling out to the external "mount" collaborator.
func cmdMountpoints(ctx *Context, argv []string) error {
	out, err := exec.Command("mount").Output()
	if err != nil {
		return IOError("mp", err)
	}
	ctx.warn("%s", string(out))
	return nil
}

// cmdFreeSoftware implements "fs": a static informational message.
func cmdFreeSoftware(ctx *Context, argv []string) error {
	ctx.warn("fs: this is free software; see the license for details")
	return nil
}

// cmdTips implements "tips": a static usage hint.
func cmdTips(ctx *Context, argv []string) error {
	ctx.warn("tips: type an entry list number to cd/open it; 'j QUERY' jumps by frecency")
	return nil
}

// cmdSplash implements "splash": prints the version string.
func cmdSplash(ctx *Context, argv []string) error {
	ctx.warn(versionString)
	return nil
}

// cmdBonus implements "bonus": an easter egg, kept for parity with
// the verb table.
func cmdBonus(ctx *Context, argv []string) error {
	ctx.warn("bonus: you found it")
	return nil
}

// cmdNewInstance implements "x"/"X": spawns a fresh instance of the
// running executable in the CWD (or the given directory), sharing
// this process's stdio. "x" and "X" behave the same; neither opens a
// new terminal.
func cmdNewInstance(ctx *Context, argv []string) error {
	self, err := os.Executable()
	if err != nil {
		return IOError("x", err)
	}
	cwd := ctx.CWD
	if len(argv) > 1 {
		cwd = resolveArg(ctx, argv[1])
	}
	cmd := exec.Command(self)
	cmd.Dir = cwd
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return IOError("x", err)
	}
	return nil
}

// cmdQuit implements "q"/"quit"/"exit"/"Q". "Q" additionally writes
// the cd-on-quit marker that an outer shell function reads to cd the
// parent shell to the last directory.
func cmdQuit(ctx *Context, argv []string) error {
	ctx.Quit = true
	return nil
}

func cmdQuitCD(ctx *Context, argv []string) error {
	ctx.Quit = true
	ctx.QuitCD = true
	return nil
}
