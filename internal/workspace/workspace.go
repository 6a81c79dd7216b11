// Package workspace implements the four workspace slots, the
// per-session directory history cursor, bounded command history, the
// pinned directory, and user variables (spec.md §3).
package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const NumWorkspaces = 4

// Manager holds all of the small, process-wide state slots that don't
// warrant their own package: workspaces, directory history, command
// history, the pinned directory, and user variables.
type Manager struct {
	mu sync.Mutex

	slots   [NumWorkspaces]string // bound path, "" if unbound
	current int

	dirHistory []string
	dirCursor  int // index of the "current" entry

	cmdHistory []string
	cmdMax     int

	pinned string

	vars map[string]string
}

// New returns a Manager with workspace 0 current and all slots unbound.
func New(cmdHistoryMax int) *Manager {
	return &Manager{
		current: 0,
		cmdMax:  cmdHistoryMax,
		vars:    make(map[string]string),
	}
}

// CurrentWorkspace returns the index and bound path (possibly empty)
// of the active workspace.
func (m *Manager) CurrentWorkspace() (int, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.slots[m.current]
}

// SwitchWorkspace activates slot n (0..3). An unbound target slot
// inherits the current workspace's path, per spec.md §3.
func (m *Manager) SwitchWorkspace(n int) (string, error) {
	if n < 0 || n >= NumWorkspaces {
		return "", fmt.Errorf("workspace: out of range: %d", n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.slots[n] == "" {
		m.slots[n] = m.slots[m.current]
	}
	m.current = n
	return m.slots[n], nil
}

// BindCurrent sets the bound path of the active workspace.
func (m *Manager) BindCurrent(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[m.current] = path
}

// InAnyWorkspace reports whether path is bound to some workspace slot,
// used to grant the jump database's in-some-workspace bonus.
func (m *Manager) InAnyWorkspace(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.slots {
		if p == path {
			return true
		}
	}
	return false
}

// LoadLastVisited reads a ".last" file: one "[*]N:PATH" line per
// workspace, "*" marking the current one.
func (m *Manager) LoadLastVisited(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		isCurrent := strings.HasPrefix(line, "*")
		line = strings.TrimPrefix(line, "*")
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(line[:idx])
		if err != nil || n < 0 || n >= NumWorkspaces {
			continue
		}
		m.mu.Lock()
		m.slots[n] = line[idx+1:]
		if isCurrent {
			m.current = n
		}
		m.mu.Unlock()
	}
	return sc.Err()
}

// SaveLastVisited writes the ".last" file.
func (m *Manager) SaveLastVisited(path string) error {
	m.mu.Lock()
	slots := m.slots
	current := m.current
	m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, p := range slots {
		if p == "" {
			continue
		}
		mark := ""
		if i == current {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s%d:%s\n", mark, i, p); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Visit records a directory change by any means other than
// back/forth: everything after the cursor is truncated and path is
// appended, unless it duplicates the entry already at the cursor.
func (m *Manager) Visit(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.dirHistory) > 0 && m.dirCursor < len(m.dirHistory) && m.dirHistory[m.dirCursor] == path {
		return
	}
	m.dirHistory = append(m.dirHistory[:m.boundedCursor()], path)
	m.dirCursor = len(m.dirHistory) - 1
}

func (m *Manager) boundedCursor() int {
	if len(m.dirHistory) == 0 {
		return 0
	}
	return m.dirCursor + 1
}

// Back moves the cursor one entry back, without mutating the list,
// and returns the path now under the cursor.
func (m *Manager) Back() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirCursor <= 0 {
		return "", false
	}
	m.dirCursor--
	return m.dirHistory[m.dirCursor], true
}

// Forth moves the cursor one entry forward.
func (m *Manager) Forth() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirCursor >= len(m.dirHistory)-1 {
		return "", false
	}
	m.dirCursor++
	return m.dirHistory[m.dirCursor], true
}

// DirHistory returns a snapshot of the directory history list.
func (m *Manager) DirHistory() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.dirHistory))
	copy(out, m.dirHistory)
	return out
}

// LoadDirHistory reads a dirhist.cfm file: one absolute path per line.
func (m *Manager) LoadDirHistory(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.dirHistory = lines
	if len(lines) > 0 {
		m.dirCursor = len(lines) - 1
	}
	m.mu.Unlock()
	return nil
}

// SaveDirHistory writes the dirhist.cfm file.
func (m *Manager) SaveDirHistory(path string) error {
	m.mu.Lock()
	lines := make([]string, len(m.dirHistory))
	copy(lines, m.dirHistory)
	m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return w.Flush()
}

// AddCommand appends a line to the bounded command history, dropping
// the oldest entry once cmdMax is exceeded.
func (m *Manager) AddCommand(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmdHistory = append(m.cmdHistory, line)
	if m.cmdMax > 0 && len(m.cmdHistory) > m.cmdMax {
		m.cmdHistory = m.cmdHistory[len(m.cmdHistory)-m.cmdMax:]
	}
}

// CommandHistory returns a snapshot of the command history.
func (m *Manager) CommandHistory() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.cmdHistory))
	copy(out, m.cmdHistory)
	return out
}

// Pin sets the pinned directory; Unpin clears it.
func (m *Manager) Pin(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinned = path
}

func (m *Manager) Unpin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinned = ""
}

// Pinned returns the pinned directory, or "" if none.
func (m *Manager) Pinned() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pinned
}

// SetVar stores a user variable.
func (m *Manager) SetVar(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[name] = value
}

// Var looks a user variable up for "$NAME" expansion.
func (m *Manager) Var(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vars[name]
	return v, ok
}

// IsVarAssignment reports whether line is a "NAME=VALUE" assignment:
// NAME starts with a letter and contains no spaces before "=".
func IsVarAssignment(line string) (name, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx <= 0 {
		return "", "", false
	}
	name = line[:idx]
	if strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	first := name[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return "", "", false
	}
	return name, line[idx+1:], true
}
