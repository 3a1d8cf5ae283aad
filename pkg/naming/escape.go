// Copyright © 2018 One Concern

package naming

import (
	"path/filepath"
	"strings"
)

const escapeMarker = '!'

// Escape turns an absolute path into a single file name, suitable for a shared backup directory.
//
// Markers are doubled, then path separators become markers.
func Escape(path string) string {
	var b strings.Builder
	b.Grow(len(path) + 8)
	for _, r := range filepath.ToSlash(path) {
		switch r {
		case escapeMarker:
			b.WriteRune(escapeMarker)
			b.WriteRune(escapeMarker)
		case '/':
			b.WriteRune(escapeMarker)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape recovers the absolute path encoded by Escape.
//
// The encoding is ambiguous when a marker sits next to a separator in the original
// path ("a!/b" and "a/!b" both encode as "a!!!b"): pairs of markers are decoded first,
// so a run of markers decodes to marker characters followed by at most one separator.
// The leading marker always stands for the root.
func Unescape(name string) (string, bool) {
	if name == "" || name[0] != escapeMarker {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(name))
	b.WriteByte('/')

	for i := 1; i < len(name); i++ {
		if name[i] != escapeMarker {
			b.WriteByte(name[i])
			continue
		}
		if i+1 < len(name) && name[i+1] == escapeMarker {
			b.WriteByte(escapeMarker)
			i++
			continue
		}
		b.WriteByte('/')
	}
	return filepath.FromSlash(b.String()), true
}
