package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// enterStdinMode reads newline-separated paths from stdin, symlinks
// each into a fresh temp directory, and chdirs into it (spec.md §6).
// The returned func restores the original directory and removes the
// temp directory; it must run before the process exits.
func enterStdinMode(_ []string) (func(), error) {
	orig, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp("", "fman-stdin-")
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		path := strings.TrimSpace(sc.Text())
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		link := filepath.Join(tmp, filepath.Base(abs))
		if err := os.Symlink(abs, link); err != nil {
			fmt.Fprintln(os.Stderr, "fman: stdin mode:", err)
		}
	}
	if err := sc.Err(); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}

	if err := os.Chdir(tmp); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}

	return func() {
		_ = os.Chdir(orig)
		_ = os.RemoveAll(tmp)
	}, nil
}
