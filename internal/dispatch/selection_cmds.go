package dispatch

import (
	"path/filepath"
	"strconv"
)

// cmdSelect implements "s"/"sel": each argument is already expanded
// to an absolute path by the parser (ELN, glob, regex, or literal),
// so this handler only needs to Add them.
func cmdSelect(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("s", "no targets given")
	}
	paths := make([]string, 0, len(argv)-1)
	for _, a := range argv[1:] {
		if filepath.IsAbs(a) {
			paths = append(paths, a)
			continue
		}
		paths = append(paths, filepath.Join(ctx.CWD, a))
	}
	if err := ctx.Selection.Add(paths...); err != nil {
		return IOError("selection", err)
	}
	return nil
}

// cmdDeselect implements "ds"/"desel": arguments are 1-based indices
// into the current selection, or "*" for everything.
func cmdDeselect(ctx *Context, argv []string) error {
	if len(argv) < 2 || argv[1] == "*" {
		return ctx.Selection.Clear()
	}
	indices := make([]int, 0, len(argv)-1)
	for _, a := range argv[1:] {
		n, err := strconv.Atoi(a)
		if err != nil {
			return InputError("ds", "not an index: "+a)
		}
		indices = append(indices, n)
	}
	if err := ctx.Selection.RemoveIndices(indices...); err != nil {
		return IOError("selection", err)
	}
	return nil
}

// cmdSelbox implements "sb"/"selbox": lists the current selection.
func cmdSelbox(ctx *Context, argv []string) error {
	for i, p := range ctx.Selection.List() {
		ctx.warn("%d %s", i+1, p)
	}
	return nil
}
