// Package sorter orders a listing by one of the methods spec.md §4.3
// names, with optional reverse and folders-first.
package sorter

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"fman/internal/entry"
)

// Method is one of the 12 sort methods, indexed as spec.md describes.
type Method int

const (
	None Method = iota
	Name
	Size
	ATime
	BTime
	CTime
	MTime
	Version
	Extension
	Inode
	Owner
	Group
)

// Options controls comparator construction.
type Options struct {
	Method          Method
	Reverse         bool
	FoldersFirst    bool
	CaseInsensitive bool
}

var caseFold = cases.Fold()

// nameKey strips a single leading dot before comparison, per spec.md
// §4.3 ("a single leading '.' is ignored"), then optionally folds case.
func nameKey(name string, ci bool) string {
	k := strings.TrimPrefix(name, ".")
	if ci {
		k = caseFold.String(k)
	}
	return k
}

// Sort orders entries in place per opt. None leaves the existing
// (directory-scan) order untouched aside from the folders-first pass.
func Sort(entries []*entry.Entry, opt Options) {
	less := comparator(opt)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if opt.FoldersFirst {
			ad, bd := a.IsDir(), b.IsDir()
			if ad != bd {
				return ad
			}
		}
		if opt.Reverse {
			return less(b, a)
		}
		return less(a, b)
	})
}

func comparator(opt Options) func(a, b *entry.Entry) bool {
	byName := func(a, b *entry.Entry) bool {
		ka, kb := nameKey(a.Name, opt.CaseInsensitive), nameKey(b.Name, opt.CaseInsensitive)
		if ka != kb {
			return ka < kb
		}
		return a.Name < b.Name
	}

	switch opt.Method {
	case None:
		return func(a, b *entry.Entry) bool { return false }
	case Name:
		return byName
	case Size:
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			return a.Size < b.Size, a.Size == b.Size
		}, byName)
	case ATime, CTime, MTime, BTime:
		// All four read Entry.Time, which the scanner fills with the
		// modification time, so these four methods give the same order.
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			return a.Time.Before(b.Time), a.Time.Equal(b.Time)
		}, byName)
	case Version:
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			c := versionCompare(a.Name, b.Name)
			return c < 0, c == 0
		}, byName)
	case Extension:
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			ea, eb := extOf(a.Name), extOf(b.Name)
			ea, eb = strings.ToLower(ea), strings.ToLower(eb)
			return ea < eb, ea == eb
		}, byName)
	case Inode:
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			return a.Inode < b.Inode, a.Inode == b.Inode
		}, byName)
	case Owner:
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			return a.UID < b.UID, a.UID == b.UID
		}, byName)
	case Group:
		return tieBreak(func(a, b *entry.Entry) (bool, bool) {
			return a.GID < b.GID, a.GID == b.GID
		}, byName)
	default:
		return byName
	}
}

// tieBreak wraps a primary comparator, falling back to byName on ties.
func tieBreak(primary func(a, b *entry.Entry) (less, equal bool), byName func(a, b *entry.Entry) bool) func(a, b *entry.Entry) bool {
	return func(a, b *entry.Entry) bool {
		if less, equal := primary(a, b); !equal {
			return less
		}
		return byName(a, b)
	}
}

func extOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// versionCompare implements natural ordering without locale
// collation: runs of digits compare numerically, everything else
// compares byte-wise. When one side runs out first, the side with
// less left sorts first; the caller breaks remaining ties by name.
func versionCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			starta, startb := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := parseDigitRun(a[starta:i])
			nb := parseDigitRun(b[startb:j])
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	return (len(a) - i) - (len(b) - j)
}

func parseDigitRun(digits string) uint64 {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return 0
	}
	n, _ := strconv.ParseUint(trimmed, 10, 64)
	return n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

var methodNames = map[string]Method{
	"none":      None,
	"name":      Name,
	"size":      Size,
	"atime":     ATime,
	"btime":     BTime,
	"ctime":     CTime,
	"mtime":     MTime,
	"version":   Version,
	"extension": Extension,
	"inode":     Inode,
	"owner":     Owner,
	"group":     Group,
}

// ParseMethod resolves a config string (as written in the rc file's
// listing.sort_method key) to a Method, case-insensitively.
func ParseMethod(s string) (Method, bool) {
	m, ok := methodNames[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}
