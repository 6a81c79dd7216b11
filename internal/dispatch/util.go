package dispatch

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"fman/internal/entry"
	"fman/internal/pathutil"
)

func nowFn() time.Time { return time.Now() }

func osChdir(path string) error { return os.Chdir(path) }

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(s)
}

// statEntry builds a minimal entry.Entry for a path that isn't in the
// current listing (e.g. "p" given an absolute path outside CWD),
// mirroring just enough of the scanner's classification to drive
// properties output.
func statEntry(path string) (*entry.Entry, error) {
	lst, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	e := &entry.Entry{
		Name:  name,
		Width: pathutil.DisplayWidth(name),
		Path:  path,
		Size:  lst.Size(),
		Time:  lst.ModTime(),
		Mode:  uint32(lst.Mode().Perm()),
	}
	mode := lst.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		e.Kind = entry.KindSymlink
		if target, err := os.Stat(path); err == nil {
			e.LinksToDir = target.IsDir()
		}
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
		e.Setuid = mode&os.ModeSetuid != 0
		e.Setgid = mode&os.ModeSetgid != 0
		e.Sticky = mode&os.ModeSticky != 0
	default:
		e.Kind = entry.KindUnknown
	}
	if st, ok := lst.Sys().(*syscall.Stat_t); ok {
		e.LinkCount = uint64(st.Nlink)
		e.UID = st.Uid
		e.GID = st.Gid
	}
	return e, nil
}
