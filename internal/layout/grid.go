// Package layout renders a directory listing as a column grid sized to
// the terminal width, or hands long output to an interactive pager
// (spec.md §4.4's optional pager, §1's "column layout driven by
// terminal width and longest name").
package layout

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"fman/internal/entry"
	"fman/internal/pathutil"
)

// Grid arranges names into columns, filling down each column before
// starting the next (the traditional "ls -C" order).
type Grid struct {
	Columns int
	Rows    int
	ColWidth []int
}

// Compute lays entries out in as many equal-width columns as fit in
// termWidth: column count is max(1, term_cols/(longest+1)), capped by
// entry count, each column right-padded to longest+1 (spec.md §4.4).
func Compute(entries []*entry.Entry, termWidth int) Grid {
	if len(entries) == 0 || termWidth <= 0 {
		return Grid{Columns: 1, Rows: len(entries), ColWidth: []int{0}}
	}

	longest := 0
	for _, e := range entries {
		if e.Width > longest {
			longest = e.Width
		}
	}
	colW := longest + 1
	if colW <= 0 {
		colW = 1
	}

	cols := termWidth / colW
	if cols < 1 {
		cols = 1
	}
	if cols > len(entries) {
		cols = len(entries)
	}
	rows := (len(entries) + cols - 1) / cols

	widths := make([]int, cols)
	for c := range widths {
		widths[c] = longest
	}

	return Grid{Columns: cols, Rows: rows, ColWidth: widths}
}

// Render produces the full multi-line grid text for entries, coloring
// each name via colorOf (nil disables coloring). An empty listing
// still emits exactly one synthetic ". .." line (spec.md §8's
// empty-directory boundary case).
func Render(entries []*entry.Entry, termWidth int, colorOf func(*entry.Entry) string) string {
	if len(entries) == 0 {
		return ". ..\n"
	}

	g := Compute(entries, termWidth)
	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			idx := c*g.Rows + r
			if idx >= len(entries) {
				continue
			}
			e := entries[idx]
			name := e.Name
			if colorOf != nil {
				name = colorOf(e) + e.Name + "\x1b[0m"
			}
			pad := g.ColWidth[c] - e.Width
			if pad < 0 {
				pad = 0
			}
			b.WriteString(name)
			if c < g.Columns-1 {
				b.WriteString(strings.Repeat(" ", pad+1))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderLong renders one entry per line, prefixed by ELN and followed
// by type character, permission triads (with setuid/setgid/sticky
// mnemonics), an ACL marker when present, uid:gid, modification time,
// and size; names that would overflow termWidth are truncated with a
// trailing "~" (spec.md §4.4's long view).
func RenderLong(entries []*entry.Entry, termWidth int) string {
	var b strings.Builder
	for i, e := range entries {
		typeChar := pathutil.TypeChar(e.IsDir(), e.Kind == entry.KindSymlink,
			e.Kind == entry.KindSocket, e.Kind == entry.KindFifo,
			e.Kind == entry.KindBlock, e.Kind == entry.KindChar)
		perms := pathutil.PermTriads(e.Mode, e.Setuid, e.Setgid, e.Sticky)
		acl := " "
		if e.HasACL {
			acl = "+"
		}
		owner := fmt.Sprintf("%d:%d", e.UID, e.GID)
		when := e.Time.Format("2006-01-02 15:04")
		size := pathutil.HumanSize(e.Size)

		prefix := fmt.Sprintf("%d %c%s%s %s %s %s ", i+1, typeChar, perms, acl, owner, when, size)
		name := e.Name
		budget := termWidth - len(prefix)
		if budget < 1 {
			budget = 1
		}
		if e.Width > budget {
			name = truncate.StringWithTail(name, uint(budget), "~")
		}
		b.WriteString(prefix)
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}
