// Copyright © 2018 One Concern

package model

import (
	"strconv"
)

// TagKind discriminates the revision tags
type TagKind uint8

const (
	// KindCurrent is the kind of the tag designating the tracked file
	KindCurrent TagKind = iota
	// KindPrevious is the kind of the tag designating the unnumbered backup
	KindPrevious
	// KindNumbered is the kind of the tags designating numbered backups
	KindNumbered
)

const (
	currentTagName  = "current"
	previousTagName = "previous"
)

// Tag identifies a revision of a tracked file.
//
// The zero value is the current revision. Tags are comparable.
type Tag struct {
	Kind TagKind
	N    uint64
}

var (
	// Current designates the tracked file itself
	Current = Tag{Kind: KindCurrent}

	// Previous designates the unnumbered backup
	Previous = Tag{Kind: KindPrevious}
)

// Numbered designates the numbered backup with suffix n
func Numbered(n uint64) Tag {
	return Tag{Kind: KindNumbered, N: n}
}

// ParseTag parses the string form of a tag, as rendered by String
func ParseTag(s string) (Tag, error) {
	switch s {
	case currentTagName, "":
		return Current, nil
	case previousTagName:
		return Previous, nil
	}
	n, ok := ParseBackupNumber(s)
	if !ok {
		return Current, ErrInvalidTag.Wrapf("%q", s)
	}
	return Numbered(n), nil
}

// ParseBackupNumber parses the number of a numbered backup suffix.
//
// Only positive integers in canonical decimal form are accepted, so that
// two distinct backup names never yield the same tag.
func ParseBackupNumber(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 || strconv.FormatUint(n, 10) != s {
		return 0, false
	}
	return n, true
}

func (t Tag) String() string {
	switch t.Kind {
	case KindPrevious:
		return previousTagName
	case KindNumbered:
		return strconv.FormatUint(t.N, 10)
	default:
		return currentTagName
	}
}

// IsCurrent tells if the tag designates the tracked file
func (t Tag) IsCurrent() bool {
	return t.Kind == KindCurrent
}

// MarshalText implements encoding.TextMarshaler
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Set implements pflag.Value, so a tag may be used as a command line flag
func (t *Tag) Set(s string) error {
	return t.UnmarshalText([]byte(s))
}

// Type implements pflag.Value
func (*Tag) Type() string {
	return "revision"
}
