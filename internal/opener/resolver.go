// Package opener resolves the application to spawn for a file, either
// an explicit app the caller names or one derived from the mime list
// (spec.md §4.10), caching resolutions keyed by the mime list's
// modification time.
package opener

import (
	"fmt"
	"os/exec"
	"strings"
)

// Resolution is the outcome of resolving an app for a file.
type Resolution struct {
	App       string
	MimeType  string
	Extension string
}

// Resolver ties together mime list rules, MIME/extension probing, and
// an optional cache.
type Resolver struct {
	MimeListPath string
	Cache        *Cache // optional
}

// Resolve implements §4.10 steps 1-3: probe MIME, derive extension,
// scan mime list rules in order, and for the first matched rule try
// each app left to right, returning the first whose first word
// resolves on $PATH.
func (r *Resolver) Resolve(path string) (*Resolution, error) {
	mtime := mtimeOrZero(r.MimeListPath)

	if r.Cache != nil {
		if app, mime, ext, ok := r.Cache.Get(path, mtime); ok {
			return &Resolution{App: app, MimeType: mime, Extension: ext}, nil
		}
	}

	mimeType, err := ProbeMIME(path)
	if err != nil {
		mimeType = ""
	}
	ext := Extension(path)

	rules, err := LoadMimeList(r.MimeListPath)
	if err != nil {
		return nil, fmt.Errorf("opener: load mime list: %w", err)
	}

	for _, rule := range rules {
		subject := mimeType
		if rule.ByExtension {
			subject = ext
		}
		if subject == "" || !rule.Pattern.MatchString(subject) {
			continue
		}
		for _, app := range rule.Apps {
			fields := strings.Fields(app)
			if len(fields) == 0 {
				continue
			}
			if _, err := exec.LookPath(fields[0]); err == nil {
				res := &Resolution{App: app, MimeType: mimeType, Extension: ext}
				if r.Cache != nil {
					_ = r.Cache.Put(path, mtime, app, mimeType, ext)
				}
				return res, nil
			}
		}
	}

	return nil, fmt.Errorf("opener: no application found for %s", path)
}

// Spawn runs app against path. If background is true, the process is
// started without waiting for it to exit (the "&" trailing-argv form).
func Spawn(app, path string, background bool) error {
	fields := strings.Fields(app)
	if len(fields) == 0 {
		return fmt.Errorf("opener: empty application")
	}
	args := append(append([]string{}, fields[1:]...), path)
	cmd := exec.Command(fields[0], args...)

	if background {
		return cmd.Start()
	}
	return cmd.Run()
}
