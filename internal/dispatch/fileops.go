package dispatch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"fman/internal/opener"
	"fman/internal/pathutil"
)

// cmdOpen implements "o"/"open": resolve an application via the mime
// list (or use an explicit one given as a second argument) and spawn
// it against the target.
func cmdOpen(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("o", "no target given")
	}
	target := resolveArg(ctx, argv[1])
	background := false
	var explicitApp string
	if len(argv) > 2 {
		if argv[len(argv)-1] == "&" {
			background = true
			argv = argv[:len(argv)-1]
		}
	}
	if len(argv) > 2 {
		explicitApp = strings.Join(argv[2:], " ")
	}

	if explicitApp != "" {
		if err := opener.Spawn(explicitApp, target, background); err != nil {
			return IOError(target, err)
		}
		return nil
	}

	res, err := ctx.Opener.Resolve(target)
	if err != nil {
		return IOError(target, err)
	}
	if err := opener.Spawn(res.App, target, background); err != nil {
		return IOError(target, err)
	}
	return nil
}

func resolveArg(ctx *Context, a string) string {
	if filepath.IsAbs(a) {
		return a
	}
	return filepath.Join(ctx.CWD, a)
}

func runShellTool(ctx *Context, name string, args []string, subject string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return ChildExitError(subject, exitErr.ExitCode())
		}
		return ChildCrashError(subject, err)
	}
	return nil
}

// RunShell hands a raw command line to /bin/sh, wired to the
// process's own stdio, for the REPL's ";cmd"/":cmd" passthrough and
// for chained segments whose first token is not an internal verb
// (spec.md §4.8).
func RunShell(ctx *Context, line string) error {
	cmd := exec.Command("/bin/sh", "-c", line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = ctx.CWD
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return ChildExitError("shell", exitErr.ExitCode())
		}
		return ChildCrashError("shell", err)
	}
	return nil
}

// cmdCopy implements "c"/"cp": copy SRC... DEST via the external cp.
func cmdCopy(ctx *Context, argv []string) error {
	if len(argv) < 3 {
		return InputError("c", "usage: c SRC... DEST")
	}
	args := append([]string{"-r"}, argv[1:]...)
	if err := runShellTool(ctx, "cp", args, "cp"); err != nil {
		return err
	}
	return ctx.Rescan()
}

// cmdMove implements "m"/"mv".
func cmdMove(ctx *Context, argv []string) error {
	if len(argv) < 3 {
		return InputError("m", "usage: m SRC... DEST")
	}
	if err := runShellTool(ctx, "mv", argv[1:], "mv"); err != nil {
		return err
	}
	return ctx.Rescan()
}

// cmdLink implements "l"/"ln".
func cmdLink(ctx *Context, argv []string) error {
	if len(argv) < 3 {
		return InputError("l", "usage: l TARGET LINKNAME")
	}
	if err := runShellTool(ctx, "ln", append([]string{"-s"}, argv[1:]...), "ln"); err != nil {
		return err
	}
	return ctx.Rescan()
}

// cmdMkdir implements "md"/"mkdir".
func cmdMkdir(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("md", "no directory name given")
	}
	if err := runShellTool(ctx, "mkdir", append([]string{"-p"}, argv[1:]...), "mkdir"); err != nil {
		return err
	}
	return ctx.Rescan()
}

// cmdRemove implements "r"/"rm". When trash-as-rm is configured this
// verb is rewritten to "tr" upstream in the parser; this handler is
// the true unlink path, so it is the one place the "confirm before
// permanent delete" prompt applies.
func cmdRemove(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("r", "no target given")
	}
	if ctx.Config.Safety.ConfirmPermanentDelete {
		ok, err := confirmPrompt(fmt.Sprintf("Permanently delete %d item(s)?", len(argv)-1))
		if err != nil {
			return IOError("r", err)
		}
		if !ok {
			return nil
		}
	}
	if err := runShellTool(ctx, "rm", append([]string{"-rf"}, argv[1:]...), "rm"); err != nil {
		return err
	}
	return ctx.Rescan()
}

// confirmPrompt asks a yes/no question on the controlling terminal,
// defaulting to "no" so an unattended or piped invocation never
// deletes anything by falling through silently.
func confirmPrompt(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// cmdToggleExec implements "te": clears all three execute bits when
// the owner-execute bit is set, and sets all three otherwise.
func cmdToggleExec(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("te", "no target given")
	}
	for _, a := range argv[1:] {
		path := resolveArg(ctx, a)
		info, err := os.Stat(path)
		if err != nil {
			return IOError(path, err)
		}
		mode := info.Mode()
		if mode&0o100 != 0 {
			mode &^= 0o111
		} else {
			mode |= 0o111
		}
		if err := os.Chmod(path, mode); err != nil {
			return IOError(path, err)
		}
	}
	return ctx.Rescan()
}

// trashInfoStanza renders the XDG "[Trash Info]" body for path,
// deleted at when (spec.md §5 persistent file formats).
func trashInfoStanza(path string, when time.Time) string {
	return fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		pathutil.URLEncode(path), when.Format("20060102T15:04:05"))
}

// cmdTrash implements "t"/"trash": moves each target into the
// profile's trash files/ directory and writes a matching .trashinfo
// stanza under info/.
func cmdTrash(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("t", "no target given")
	}
	trashDir := filepath.Join(ctx.Paths.ProfileDir, "trash")
	filesDir := filepath.Join(trashDir, "files")
	infoDir := filepath.Join(trashDir, "info")
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return IOError(trashDir, err)
	}
	if err := os.MkdirAll(infoDir, 0o755); err != nil {
		return IOError(trashDir, err)
	}

	now := nowFn()
	for _, a := range argv[1:] {
		src := resolveArg(ctx, a)
		base := filepath.Base(src)
		dest := filepath.Join(filesDir, base)
		if err := os.Rename(src, dest); err != nil {
			return IOError(src, err)
		}
		info := filepath.Join(infoDir, base+".trashinfo")
		if err := os.WriteFile(info, []byte(trashInfoStanza(src, now)), 0o644); err != nil {
			return IOError(info, err)
		}
	}
	return ctx.Rescan()
}

// cmdUntrash implements "u"/"untrash": restores a previously trashed
// name back to the path recorded in its .trashinfo stanza.
func cmdUntrash(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("u", "no target given")
	}
	trashDir := filepath.Join(ctx.Paths.ProfileDir, "trash")
	filesDir := filepath.Join(trashDir, "files")
	infoDir := filepath.Join(trashDir, "info")

	for _, a := range argv[1:] {
		infoPath := filepath.Join(infoDir, a+".trashinfo")
		data, err := os.ReadFile(infoPath)
		if err != nil {
			return IOError(infoPath, err)
		}
		origin, ok := parseTrashInfoPath(string(data))
		if !ok {
			return InputError("u", "malformed trash info: "+a)
		}
		src := filepath.Join(filesDir, a)
		if err := os.Rename(src, origin); err != nil {
			return IOError(src, err)
		}
		_ = os.Remove(infoPath)
	}
	return ctx.Rescan()
}

func parseTrashInfoPath(body string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "Path=") {
			return pathutil.URLDecode(strings.TrimPrefix(line, "Path=")), true
		}
	}
	return "", false
}

// archiveTool picks the first archiver found on $PATH among spec.md
// §6's archive verb collaborators, tried in order; the choice does not
// depend on the files being archived.
func archiveTool() (string, bool) {
	for _, name := range []string{"atool", "archivemount", "zstd", "mkisofs", "7z"} {
		if _, err := exec.LookPath(name); err == nil {
			return name, true
		}
	}
	return "", false
}

// cmdArchive implements "ac"/"ad": bundles the given paths into an
// archive using whichever external archiver is available.
func cmdArchive(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("ac", "no target given")
	}
	tool, ok := archiveTool()
	if !ok {
		return IOError("ac", fmt.Errorf("no archive tool found on PATH"))
	}
	var args []string
	switch tool {
	case "atool":
		args = append([]string{"-a", "archive.tar.gz"}, argv[1:]...)
	case "7z":
		args = append([]string{"a", "archive.7z"}, argv[1:]...)
	case "zstd":
		args = append([]string{"-o", "archive.zst"}, argv[1:]...)
	case "mkisofs":
		args = append([]string{"-o", "archive.iso"}, argv[1:]...)
	default:
		args = argv[1:]
	}
	if err := runShellTool(ctx, tool, args, tool); err != nil {
		return err
	}
	return ctx.Rescan()
}

// cmdMime implements "mm"/"mime": "mime info PATH" reports the probed
// type, "mime edit" opens the mime list in $EDITOR.
func cmdMime(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("mm", "usage: mm info PATH | mm edit")
	}
	switch argv[1] {
	case "info":
		if len(argv) < 3 {
			return InputError("mm", "no target given")
		}
		target := resolveArg(ctx, argv[2])
		res, err := ctx.Opener.Resolve(target)
		if err != nil {
			ctx.warn("mm: %s: no resolved application", target)
			return nil
		}
		ctx.warn("%s: %s (%s)", target, res.MimeType, res.App)
		return nil
	case "edit":
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		return runShellTool(ctx, editor, []string{ctx.Opener.MimeListPath}, "mime")
	default:
		return InputError("mm", "unknown subcommand: "+argv[1])
	}
}

// cmdEditLink implements "le": with one argument, reports the
// symlink's current target; with two, removes and recreates it
// pointing at the new target.
func cmdEditLink(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("le", "no symlink given")
	}
	link := resolveArg(ctx, argv[1])
	if len(argv) < 3 {
		target, err := os.Readlink(link)
		if err != nil {
			return IOError(link, err)
		}
		ctx.warn("%s -> %s", link, target)
		return nil
	}
	if err := os.Remove(link); err != nil {
		return IOError(link, err)
	}
	if err := os.Symlink(argv[2], link); err != nil {
		return IOError(link, err)
	}
	return ctx.Rescan()
}

// cmdBatchLink implements "bl": symlinks every given target into CWD
// under its own base name.
func cmdBatchLink(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("bl", "no targets given")
	}
	for _, a := range argv[1:] {
		src := resolveArg(ctx, a)
		dest := filepath.Join(ctx.CWD, filepath.Base(src))
		if err := os.Symlink(src, dest); err != nil {
			return IOError(dest, err)
		}
	}
	return ctx.Rescan()
}

// cmdBulkRename implements "br"/"bulk": writes the given targets' base
// names (or the whole selection when no arguments are given) one per
// line to a temp file, opens it in $EDITOR, and applies each changed
// line as a rename of the corresponding original entry.
func cmdBulkRename(ctx *Context, argv []string) error {
	var targets []string
	if len(argv) > 1 {
		for _, a := range argv[1:] {
			targets = append(targets, resolveArg(ctx, a))
		}
	} else {
		targets = ctx.Selection.List()
	}
	if len(targets) == 0 {
		return InputError("br", "no targets given")
	}

	tmp, err := os.CreateTemp("", "fman-bulk-*.txt")
	if err != nil {
		return IOError("br", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	for _, t := range targets {
		fmt.Fprintln(tmp, filepath.Base(t))
	}
	tmp.Close()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	if err := runShellTool(ctx, editor, []string{tmpPath}, "br"); err != nil {
		return err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return IOError(tmpPath, err)
	}
	lines := strings.Split(strings.TrimRight(string(edited), "\n"), "\n")
	if len(lines) != len(targets) {
		return InputError("br", "line count changed; aborting rename")
	}
	for i, t := range targets {
		newName := lines[i]
		if newName == filepath.Base(t) {
			continue
		}
		dest := filepath.Join(filepath.Dir(t), newName)
		if err := os.Rename(t, dest); err != nil {
			return IOError(t, err)
		}
	}
	return ctx.Rescan()
}

// cmdPaste implements "v"/"vv"/"paste": copies the current selection
// into CWD.
func cmdPaste(ctx *Context, argv []string) error {
	paths := ctx.Selection.List()
	if len(paths) == 0 {
		return InputError("v", "selection is empty")
	}
	args := append(append([]string{"-r"}, paths...), ctx.CWD)
	if err := runShellTool(ctx, "cp", args, "cp"); err != nil {
		return err
	}
	return ctx.Rescan()
}

// cmdExport implements "exp"/"export": writes the current selection
// (or every listed name when the selection is empty), one path per
// line, to the given file.
func cmdExport(ctx *Context, argv []string) error {
	if len(argv) < 2 {
		return InputError("exp", "no destination file given")
	}
	dest := resolveArg(ctx, argv[1])
	paths := ctx.Selection.List()
	if len(paths) == 0 {
		for _, e := range ctx.Entries {
			paths = append(paths, e.Path)
		}
	}
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(dest, []byte(b.String()), 0o644); err != nil {
		return IOError(dest, err)
	}
	return nil
}
