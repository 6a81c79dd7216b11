package scanner

import "fman/internal/entry"

// Color tags mirror clifm's named interface-color slots; the dispatcher's
// renderer maps these onto actual ANSI SGR codes read from a color scheme
// (an out-of-scope collaborator per spec.md §6 — we keep the symbolic tag
// here and let rendering own the palette).
const (
	ColorDir          = "di"
	ColorReg          = "fi"
	ColorExec         = "ex"
	ColorLink         = "ln"
	ColorBrokenLink   = "or"
	ColorSocket       = "so"
	ColorFifo         = "pi"
	ColorBlockDev     = "bd"
	ColorCharDev      = "cd"
	ColorSetuid       = "su"
	ColorSetgid       = "sg"
	ColorSticky       = "st"
	ColorUnreadableDir = "nd"
	ColorEmptyDir     = "ed"
)

// colorFor derives the cached color tag for e, the way the scanner's
// single classification pass assigns exactly one tag per entry.
func colorFor(e *entry.Entry) string {
	switch e.Kind {
	case entry.KindDirectory:
		if e.ChildCount < 0 {
			return ColorUnreadableDir
		}
		if e.ChildCount == 0 {
			return ColorEmptyDir
		}
		return ColorDir
	case entry.KindSymlink:
		if e.LinksToDir {
			return ColorDir
		}
		if !e.ReadableByMe {
			return ColorBrokenLink
		}
		return ColorLink
	case entry.KindSocket:
		return ColorSocket
	case entry.KindFifo:
		return ColorFifo
	case entry.KindBlock:
		return ColorBlockDev
	case entry.KindChar:
		return ColorCharDev
	case entry.KindRegular:
		if e.Setuid {
			return ColorSetuid
		}
		if e.Setgid {
			return ColorSetgid
		}
		if e.Sticky {
			return ColorSticky
		}
		if e.Executable {
			return ColorExec
		}
		return ColorReg
	default:
		return ColorReg
	}
}
