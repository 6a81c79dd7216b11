// Package pathutil provides path, filename, and display-width helpers
// shared across the scanner, parser, and layout packages.
package pathutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// quoteChars is the set of bytes Escape prefixes with a backslash.
const quoteChars = " \t\n\"\\'`@$><=,;|&{[()]}?!*^"

// HomeAbbreviate replaces the user's home directory prefix with "~",
// the way a prompt shortens a long CWD.
func HomeAbbreviate(p, home string) string {
	if home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+"/") {
		return "~" + p[len(home):]
	}
	return p
}

// Escape backslash-escapes every byte in name that belongs to the quote set.
func Escape(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if strings.IndexByte(quoteChars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Dequote reverses Escape: each backslash is dropped and the byte it
// precedes is copied verbatim, so a run of N backslashes collapses to
// N/2 literal backslashes rather than zero.
func Dequote(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Fastback expands a leading run of N>=3 dots ("...", "....", ...)
// optionally followed by "/rest" into N-1 "../" segments. It reports
// ok=false ("not applicable") when s has no such prefix.
func Fastback(s string) (result string, ok bool) {
	n := 0
	for n < len(s) && s[n] == '.' {
		n++
	}
	if n < 3 {
		return "", false
	}
	rest := s[n:]
	if rest != "" && rest[0] != '/' {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < n-1; i++ {
		b.WriteString("../")
	}
	if rest != "" {
		b.WriteString(rest[1:])
	}
	out := b.String()
	if out == "" {
		out = "./"
	}
	return out, true
}

var sizeUnits = [...]byte{'B', 'K', 'M', 'G', 'T', 'P', 'E', 'Z', 'Y'}

// HumanSize renders a byte count using the largest unit under which the
// value stays below 1024, with no fractional digits when the result is
// integral and two otherwise.
func HumanSize(bytes int64) string {
	v := float64(bytes)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d%c", bytes, sizeUnits[0])
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d%c", int64(v), sizeUnits[unit])
	}
	return fmt.Sprintf("%.2f%c", v, sizeUnits[unit])
}

const hexDigits = "0123456789ABCDEF"

// urlSafe reports whether b needs no percent-escaping under RFC 2396's
// unreserved set, used for trash "Path=" info fields.
func urlSafe(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case strings.IndexByte("-_.~/", b) >= 0:
		return true
	}
	return false
}

// URLEncode percent-encodes p per RFC 2396, preserving "/".
func URLEncode(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		if urlSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0xF])
	}
	return b.String()
}

// URLDecode reverses URLEncode; malformed escapes are passed through
// verbatim rather than erroring, matching a tolerant trash-info reader.
func URLDecode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := hexVal(s[i+1])
			lo, ok2 := hexVal(s[i+2])
			if ok1 && ok2 {
				b.WriteByte(byte(hi<<4 | lo))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// DisplayWidth returns the terminal column width of s, honoring
// multi-byte runes and zero-width combining marks. Grapheme-cluster
// segmentation (uniseg) decides where combining marks attach; each
// cluster's width is then measured with go-runewidth so wide CJK
// clusters still count as two columns.
func DisplayWidth(s string) int {
	width := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "" {
			break
		}
		r := []rune(cluster)[0]
		width += runewidth.RuneWidth(r)
	}
	return width
}

// TypeChar returns the ls-style type character for a directory entry
// kind, used as the first column of a long-view line.
func TypeChar(isDir, isSymlink, isSocket, isFifo, isBlock, isChar bool) byte {
	switch {
	case isDir:
		return 'd'
	case isSymlink:
		return 'l'
	case isSocket:
		return 's'
	case isFifo:
		return 'p'
	case isBlock:
		return 'b'
	case isChar:
		return 'c'
	default:
		return '-'
	}
}

// PermTriads renders the nine owner/group/other permission bits of
// mode as "rwxrwxrwx", substituting the setuid/setgid/sticky
// mnemonics (s/S, s/S, t/T) in place of the executable bit they
// override.
func PermTriads(mode uint32, setuid, setgid, sticky bool) string {
	bits := [9]byte{'r', 'w', 'x', 'r', 'w', 'x', 'r', 'w', 'x'}
	var b strings.Builder
	b.Grow(9)
	for i, want := range bits {
		shift := uint(8 - i)
		if mode&(1<<shift) == 0 {
			b.WriteByte('-')
			continue
		}
		b.WriteByte(want)
	}
	out := []byte(b.String())
	applyMnemonic(out, 2, mode&0o100 != 0, setuid)
	applyMnemonic(out, 5, mode&0o010 != 0, setgid)
	applyMnemonic(out, 8, mode&0o001 != 0, sticky)
	return string(out)
}

// applyMnemonic overwrites the executable column at idx with the
// setuid/setgid/sticky mnemonic: lowercase when the executable bit is
// also set, uppercase otherwise.
func applyMnemonic(triads []byte, idx int, execSet, specialSet bool) {
	if !specialSet {
		return
	}
	mnemonic := byte('S')
	if idx == 8 {
		mnemonic = 'T'
	}
	if execSet {
		mnemonic += 'a' - 'A' // lowercase
	}
	triads[idx] = mnemonic
}

// UserHome resolves $HOME, falling back to os.UserHomeDir.
func UserHome() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}
