package scanner

import (
	"path/filepath"
	"strings"

	"fman/internal/entry"
)

// extIcons maps a lowercased extension (without the leading dot) to an
// icon tag; unmatched regular files fall back to iconFile.
var extIcons = map[string]string{
	"go":   "",
	"py":   "",
	"rs":   "",
	"js":   "",
	"ts":   "",
	"json": "",
	"yaml": "",
	"yml":  "",
	"md":   "",
	"txt":  "",
	"tar":  "",
	"gz":   "",
	"zip":  "",
	"iso":  "",
	"png":  "",
	"jpg":  "",
	"jpeg": "",
	"gif":  "",
	"pdf":  "",
	"mp3":  "",
	"mp4":  "",
	"sh":   "",
}

const (
	iconDir     = ""
	iconFile    = ""
	iconLink    = ""
	iconExec    = ""
	iconSocket  = ""
	iconFifo    = ""
	iconDevice  = ""
)

// iconFor derives the cached icon tag for e. The scanner calls it only
// when Options.IconsOn is set; entries scanned with icons off keep an
// empty Icon.
func iconFor(e *entry.Entry) string {
	switch e.Kind {
	case entry.KindDirectory:
		return iconDir
	case entry.KindSymlink:
		return iconLink
	case entry.KindSocket:
		return iconSocket
	case entry.KindFifo:
		return iconFifo
	case entry.KindBlock, entry.KindChar:
		return iconDevice
	case entry.KindRegular:
		if e.Executable {
			return iconExec
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name), "."))
		if icon, ok := extIcons[ext]; ok {
			return icon
		}
		return iconFile
	default:
		return iconFile
	}
}
