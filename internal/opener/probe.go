package opener

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// ProbeMIME shells out to file(1) in MIME-type mode, the external
// collaborator spec.md §6 names for MIME probing. Its stdout/stderr
// are captured (never connected to the terminal), matching the
// read-only, redirected-output contract spec.md requires of it.
func ProbeMIME(path string) (string, error) {
	out, err := exec.Command("file", "--brief", "--mime-type", path).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Extension returns the substring after the last '.' in the file's
// basename, with any leading dot stripped, or "" if there is none.
func Extension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return base[idx+1:]
}
