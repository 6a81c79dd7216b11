// Package scanner reads a directory and produces entry.Entry records,
// classifying each one's type, color, and icon in a single pass.
package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"syscall"

	"github.com/panjf2000/ants/v2"

	"fman/internal/entry"
	"fman/internal/pathutil"
)

// statWorkers bounds how many per-entry lstat/countChildren calls run
// concurrently during a scan; directory listings can be large enough,
// and network-mounted ones slow enough, that doing this serially is
// the dominant cost (spec.md's "slow on network mounts" note on Counter).
const statWorkers = 32

// Options controls one scan invocation.
type Options struct {
	ShowHidden bool           // include dotfiles
	OnlyDirs   bool           // exclude non-directories
	Filter     *regexp.Regexp // exclude names matching this pattern, nil disables
	Light      bool           // classify from lstat mode bits only: no target stat, child count, or setuid/setgid/sticky
	Counter    bool           // count children of directories (slow on network mounts)
	IconsOn    bool           // populate Icon; skipped entirely when false
}

// Scan lists dir, excluding "." and "..", and returns one Entry per
// remaining name. A single per-entry lstat failure skips that entry and
// continues; an error opening dir itself is returned and the caller
// should keep its previous listing (spec.md §4.2).
func Scan(dir string, opt Options) ([]*entry.Entry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	kept := make([]string, 0, len(names))
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		if !opt.ShowHidden && len(name) > 0 && name[0] == '.' {
			continue
		}
		if opt.Filter != nil && opt.Filter.MatchString(name) {
			continue
		}
		kept = append(kept, name)
	}

	built := make([]*entry.Entry, len(kept))
	pool, err := ants.NewPool(statWorkers, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, name := range kept {
		i, name := i, name
		wg.Add(1)
		_ = pool.Submit(func() {
			defer wg.Done()
			if e, ok := buildEntry(dir, name, opt); ok {
				built[i] = e
			}
		})
	}
	wg.Wait()

	entries := make([]*entry.Entry, 0, len(built))
	for _, e := range built {
		if e == nil {
			continue
		}
		if opt.OnlyDirs && !e.IsDir() {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func buildEntry(dir, name string, opt Options) (*entry.Entry, bool) {
	full := filepath.Join(dir, name)

	e := &entry.Entry{
		Name:  name,
		Width: pathutil.DisplayWidth(name),
		Path:  full,
	}

	if opt.Light {
		fi, err := os.Lstat(full)
		if err != nil {
			return nil, false
		}
		classifyLight(e, fi)
		e.Color = colorFor(e)
		if opt.IconsOn {
			e.Icon = iconFor(e)
		}
		return e, true
	}

	lst, err := os.Lstat(full)
	if err != nil {
		return nil, false
	}
	classifyFull(e, lst, full, opt)
	e.Color = colorFor(e)
	if opt.IconsOn {
		e.Icon = iconFor(e)
	}
	return e, true
}

// classifyLight fills only what os.FileInfo's mode bits can tell us,
// skipping the extra stat calls a full scan makes (spec.md "Light mode").
func classifyLight(e *entry.Entry, fi os.FileInfo) {
	mode := fi.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		e.Kind = entry.KindSymlink
	case mode.IsDir():
		e.Kind = entry.KindDirectory
	case mode&os.ModeSocket != 0:
		e.Kind = entry.KindSocket
	case mode&os.ModeNamedPipe != 0:
		e.Kind = entry.KindFifo
	case mode&os.ModeDevice != 0:
		if mode&os.ModeCharDevice != 0 {
			e.Kind = entry.KindChar
		} else {
			e.Kind = entry.KindBlock
		}
	case mode.IsRegular():
		e.Kind = entry.KindRegular
		e.Executable = mode&0o111 != 0
	default:
		e.Kind = entry.KindUnknown
	}
	e.Size = fi.Size()
	e.Time = fi.ModTime()
	e.Mode = uint32(mode.Perm())
	e.ChildCount = -1
}

func classifyFull(e *entry.Entry, lst os.FileInfo, full string, opt Options) {
	mode := lst.Mode()
	st, _ := lst.Sys().(*syscall.Stat_t)

	switch {
	case mode&os.ModeSymlink != 0:
		e.Kind = entry.KindSymlink
		if target, err := os.Stat(full); err == nil {
			e.LinksToDir = target.IsDir()
			e.ReadableByMe = true
		} else {
			e.ReadableByMe = false
		}
	case mode.IsDir():
		e.Kind = entry.KindDirectory
		e.ChildCount = countChildren(full, opt)
	case mode&os.ModeSocket != 0:
		e.Kind = entry.KindSocket
	case mode&os.ModeNamedPipe != 0:
		e.Kind = entry.KindFifo
	case mode&os.ModeDevice != 0:
		if mode&os.ModeCharDevice != 0 {
			e.Kind = entry.KindChar
		} else {
			e.Kind = entry.KindBlock
		}
	case mode.IsRegular():
		e.Kind = entry.KindRegular
		e.Executable = mode&0o111 != 0
		e.Setuid = mode&os.ModeSetuid != 0
		e.Setgid = mode&os.ModeSetgid != 0
		e.Sticky = mode&os.ModeSticky != 0
	default:
		e.Kind = entry.KindUnknown
	}

	e.Size = lst.Size()
	e.Time = lst.ModTime()
	e.Mode = uint32(mode.Perm())
	if e.Kind != entry.KindDirectory {
		e.ChildCount = -1
	}

	if st != nil {
		e.Inode = st.Ino
		e.LinkCount = uint64(st.Nlink)
		e.UID = st.Uid
		e.GID = st.Gid
	}
}

// countChildren returns the number of entries (excluding . and ..) in
// dir, or -1 if it cannot be opened (spec.md's "unreadable" case).
// With opt.Counter off it returns 0 without opening dir.
func countChildren(dir string, opt Options) int {
	if !opt.Counter {
		return 0
	}
	f, err := os.Open(dir)
	if err != nil {
		return -1
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return -1
	}
	n := 0
	for _, name := range names {
		if name != "." && name != ".." {
			n++
		}
	}
	return n
}
