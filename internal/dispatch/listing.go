package dispatch

import (
	"regexp"

	"fman/internal/config"
	"fman/internal/sorter"
)

func cmdRefresh(ctx *Context, argv []string) error {
	return ctx.Rescan()
}

func cmdToggleHidden(ctx *Context, argv []string) error {
	ctx.ScanOpt.ShowHidden = !ctx.ScanOpt.ShowHidden
	return ctx.Rescan()
}

func cmdLightMode(ctx *Context, argv []string) error {
	ctx.ScanOpt.Light = !ctx.ScanOpt.Light
	return ctx.Rescan()
}

func cmdMaxFiles(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		ctx.warn("mf: current limit %d", ctx.MaxFiles)
		return nil
	}
	n, err := atoiStrict(argv[1])
	if err != nil || n < 0 {
		return InputError("mf", "invalid limit: "+argv[1])
	}
	ctx.MaxFiles = n
	return ctx.Rescan()
}

func cmdFilter(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		ctx.ScanOpt.Filter = nil
		return ctx.Rescan()
	}
	re, err := regexp.Compile(argv[1])
	if err != nil {
		return InputError("ft", "bad filter regex: "+err.Error())
	}
	ctx.ScanOpt.Filter = re
	return ctx.Rescan()
}

func cmdSort(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		ctx.warn("st: current method %d", ctx.SortOpt.Method)
		return nil
	}
	method, ok := sorter.ParseMethod(argv[1])
	if !ok {
		return InputError("st", "unknown sort method: "+argv[1])
	}
	ctx.SortOpt.Method = method
	sorter.Sort(ctx.Entries, ctx.SortOpt)
	return nil
}

// cmdReload implements "rl"/"reload": re-reads the profile config from
// disk and re-lists, the way "edit" does after closing $EDITOR but
// without opening one (spec.md §4.11).
func cmdReload(ctx *Context, argv []string) error {
	cfg, err := config.Load(ctx.Paths.RCFile)
	if err != nil {
		return IOError("rl", err)
	}
	*ctx.Config = *cfg
	return ctx.Rescan()
}

// cmdLs implements "ls": switches subsequent renders to the long view
// (spec.md §4.4) and re-lists immediately.
func cmdLs(ctx *Context, argv []string) error {
	ctx.LongView = true
	return ctx.Rescan()
}

// cmdColumns implements "cl"/"columns": switches subsequent renders
// back to the column grid.
func cmdColumns(ctx *Context, argv []string) error {
	ctx.LongView = false
	return nil
}

// cmdPager implements "pg"/"pager": with no argument, toggles the
// pager option; "on"/"off" set it explicitly.
func cmdPager(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		ctx.Config.Listing.Pager = !ctx.Config.Listing.Pager
		return nil
	}
	switch argv[1] {
	case "on":
		ctx.Config.Listing.Pager = true
	case "off":
		ctx.Config.Listing.Pager = false
	default:
		return InputError("pg", "usage: pg [on|off]")
	}
	return nil
}

// cmdIcons implements "icons": toggles icon rendering and re-lists so
// the scanner's icon classification pass reruns.
func cmdIcons(ctx *Context, argv []string) error {
	ctx.ScanOpt.IconsOn = !ctx.ScanOpt.IconsOn
	return ctx.Rescan()
}
