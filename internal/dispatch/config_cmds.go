package dispatch

import (
	"os/exec"

	"fman/internal/config"
)

// cmdEdit implements "edit": opens the profile's rc file in $EDITOR
// and reloads it on return.
func cmdEdit(ctx *Context, argv []string) error {
	run := func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		return cmd.Run()
	}
	if err := config.Edit(ctx.Paths.RCFile, run); err != nil {
		return IOError("edit", err)
	}
	cfg, err := config.Load(ctx.Paths.RCFile)
	if err != nil {
		return IOError("edit", err)
	}
	*ctx.Config = *cfg
	return nil
}

// cmdKeybinds implements "kb"/"keybinds": opens the shared keybindings
// file in $EDITOR.
func cmdKeybinds(ctx *Context, argv []string) error {
	run := func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		return cmd.Run()
	}
	return withEditor(ctx.Paths.Keybindings, run)
}

func withEditor(path string, run func(name string, args ...string) error) error {
	return config.Edit(path, run)
}

// cmdOpener implements "opener": "opener edit" opens the mime list;
// with no argument it reports the path in use.
func cmdOpener(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		ctx.warn("opener: %s", ctx.Opener.MimeListPath)
		return nil
	}
	if argv[1] != "edit" {
		return InputError("opener", "unknown subcommand: "+argv[1])
	}
	run := func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		return cmd.Run()
	}
	return withEditor(ctx.Opener.MimeListPath, run)
}

// cmdShell implements "shell": reports (and, with an argument, does
// nothing but acknowledge, since the active shell is fixed at process
// start) the external-command shell in use.
func cmdShell(ctx *Context, argv []string) error {
	ctx.warn("shell: /bin/sh")
	return nil
}

// cmdProfile implements "pf"/"profile": with no argument reports the
// active profile's directory; switching profiles requires restarting
// the process, so this only reports.
func cmdProfile(ctx *Context, argv []string) error {
	ctx.warn("profile: %s", ctx.Paths.ProfileDir)
	return nil
}

// cmdAlias implements "alias": prints how to define and expand user
// variables, which double as this program's alias mechanism (spec.md
// §4.8's "$NAME lookup"). It does not list the variables defined.
func cmdAlias(ctx *Context, argv []string) error {
	ctx.warn("alias: use NAME=VALUE to define, $NAME to expand")
	return nil
}

// cmdActions implements "actions": reports the profile's plugins
// directory. It does not list the scripts in it.
func cmdActions(ctx *Context, argv []string) error {
	ctx.warn("actions: %s", ctx.Paths.PluginsDir)
	return nil
}
