// Copyright © 2018 One Concern

// Package naming converts between tracked file paths and the names of their backups.
//
// The convention is the one used by editors on save:
//
//	/dir/name.ext~        the unnumbered backup
//	/dir/name.ext.~N~     numbered backups, N > 0
//
// Backups may be relocated by Rules. A rule with a relative directory keeps backups
// in a subdirectory of the tracked file's directory. A rule with an absolute directory
// collects the backups of many files in a shared root, in which case the full tracked
// path is escaped into the backup name ("/" becomes "!" and "!" becomes "!!").
//
// All functions in this package are pure: they never touch the filesystem.
package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/oneconcern/vcbackup/pkg/model"
)

const (
	// Marker terminates every backup name
	Marker = "~"

	numberedPrefix = ".~"
)

var (
	// name.~N~, where N is anything but a tilde: malformed numbers are reported, not ignored
	numberedExp = regexp.MustCompile(`^(.+)\.~([^~]*)~$`)
)

// Rule relocates the backups of the tracked files matching Pattern into Directory
type Rule struct {
	Pattern   string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`
	Directory string `json:"directory" yaml:"directory" mapstructure:"directory"`

	re *regexp.Regexp
}

func (r Rule) shared() bool {
	return filepath.IsAbs(r.Directory)
}

// Codec maps tracked paths to backup names and back, according to a list of rules
type Codec struct {
	rules []Rule
}

// Default keeps backups next to the tracked file
func Default() *Codec {
	return &Codec{}
}

// New builds a codec from relocation rules. The first rule matching a tracked path applies.
func New(rules ...Rule) (*Codec, error) {
	c := &Codec{rules: make([]Rule, 0, len(rules))}
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid backup directory pattern %q: %v", rule.Pattern, err)
		}
		if rule.Directory == "" {
			return nil, fmt.Errorf("missing backup directory for pattern %q", rule.Pattern)
		}
		rule.re = re
		rule.Directory = filepath.Clean(rule.Directory)
		c.rules = append(c.rules, rule)
	}
	return c, nil
}

// Rules configured for this codec
func (c *Codec) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

func (c *Codec) ruleFor(tracked string) (Rule, bool) {
	for _, rule := range c.rules {
		if rule.re.MatchString(tracked) {
			return rule, true
		}
	}
	return Rule{}, false
}

// stem returns the directory and the name shared by all backups of a tracked path.
func (c *Codec) stem(tracked string) (string, string) {
	tracked = filepath.Clean(tracked)
	dir, file := filepath.Split(tracked)
	dir = filepath.Clean(dir)

	rule, ok := c.ruleFor(tracked)
	switch {
	case !ok:
		return dir, file
	case rule.shared():
		return rule.Directory, Escape(tracked)
	default:
		return filepath.Join(dir, rule.Directory), file
	}
}

// BackupDir is the directory holding the backups of a tracked path
func (c *Codec) BackupDir(tracked string) string {
	dir, _ := c.stem(tracked)
	return dir
}

// UnnumberedName is the path of the unnumbered backup of a tracked path
func (c *Codec) UnnumberedName(tracked string) string {
	dir, name := c.stem(tracked)
	return filepath.Join(dir, name+Marker)
}

// NumberedName is the path of the numbered backup n of a tracked path
func (c *Codec) NumberedName(tracked string, n uint64) string {
	dir, name := c.stem(tracked)
	return filepath.Join(dir, name+numberedPrefix+strconv.FormatUint(n, 10)+Marker)
}

// BackupName is the path of the backup designated by a tag.
//
// The current tag designates the tracked path itself.
func (c *Codec) BackupName(tracked string, tag model.Tag) string {
	switch tag.Kind {
	case model.KindPrevious:
		return c.UnnumberedName(tracked)
	case model.KindNumbered:
		return c.NumberedName(tracked, tag.N)
	default:
		return filepath.Clean(tracked)
	}
}

// IsBackup tells if a path is named like a backup
func IsBackup(path string) bool {
	return strings.HasSuffix(path, Marker)
}

// SplitName splits a backup file name into the stem and the tag.
//
// A name which is not a backup yields the current tag. A name which looks like
// a numbered backup with an invalid number yields ErrMalformedBackupName.
func SplitName(name string) (string, model.Tag, error) {
	if !IsBackup(name) {
		return name, model.Current, nil
	}

	if match := numberedExp.FindStringSubmatch(name); len(match) == 3 {
		n, ok := model.ParseBackupNumber(match[2])
		if !ok {
			return "", model.Current, model.ErrMalformedBackupName.Wrapf("%q: bad version number %q", name, match[2])
		}
		return match[1], model.Numbered(n), nil
	}

	stem := strings.TrimSuffix(name, Marker)
	if stem == "" {
		return "", model.Current, model.ErrMalformedBackupName.Wrapf("%q: empty name", name)
	}
	return stem, model.Previous, nil
}

// ExtractTag returns the tag of a path: current for a tracked file, previous for
// an unnumbered backup and the version number for a numbered one
func ExtractTag(path string) (model.Tag, error) {
	_, tag, err := SplitName(filepath.Base(path))
	return tag, err
}

// TrackedPath returns the path of the tracked file a backup belongs to.
//
// Tracked paths are returned unchanged (cleaned).
func (c *Codec) TrackedPath(path string) (string, error) {
	path = filepath.Clean(path)
	dir, name := filepath.Split(path)
	dir = filepath.Clean(dir)

	stem, tag, err := SplitName(name)
	if err != nil {
		return "", err
	}
	if tag.IsCurrent() {
		return path, nil
	}

	return c.trackedFromStem(dir, stem), nil
}

// trackedFromStem inverts the relocation of a backup stem found in dir
func (c *Codec) trackedFromStem(dir, stem string) string {
	for _, rule := range c.rules {
		var candidate string
		if rule.shared() {
			if dir != rule.Directory {
				continue
			}
			unescaped, ok := Unescape(stem)
			if !ok {
				continue
			}
			candidate = unescaped
		} else {
			trackedDir, ok := trimDirSuffix(dir, rule.Directory)
			if !ok {
				continue
			}
			candidate = filepath.Join(trackedDir, stem)
		}

		// the candidate is the answer only if encoding it leads back to this directory
		if c.BackupDir(candidate) == dir {
			return candidate
		}
	}

	return filepath.Join(dir, stem)
}

// UnnumberedTrackedPath reads a path as an unnumbered backup, whatever precedes the marker.
//
// The unnumbered backup of a tracked name containing ".~" also looks like a malformed
// numbered backup ("report.~draft~"), so TrackedPath rejects it. This reading succeeds
// only when the tracked path it yields has this very path as its unnumbered backup.
func (c *Codec) UnnumberedTrackedPath(path string) (string, bool) {
	path = filepath.Clean(path)
	dir, name := filepath.Split(path)
	dir = filepath.Clean(dir)

	stem := strings.TrimSuffix(name, Marker)
	if stem == name || stem == "" {
		return "", false
	}
	candidate := c.trackedFromStem(dir, stem)
	if c.UnnumberedName(candidate) != path {
		return "", false
	}
	return candidate, true
}

// trimDirSuffix removes a relative directory from the end of dir
func trimDirSuffix(dir, rel string) (string, bool) {
	sep := string(filepath.Separator)
	if !strings.HasSuffix(dir, sep+rel) {
		return "", false
	}
	parent := strings.TrimSuffix(dir, sep+rel)
	if parent == "" {
		parent = sep
	}
	return parent, true
}

// SearchPattern returns the directory holding the backups of a tracked path,
// and a glob pattern matching the names of its numbered and unnumbered backups
func (c *Codec) SearchPattern(tracked string) (string, string) {
	dir, name := c.stem(tracked)
	quoted := glob.QuoteMeta(name)
	return dir, "{" + quoted + Marker + "," + quoted + numberedPrefix + "*" + Marker + "}"
}

// Matcher selects the backups of one tracked path among the entries of its backup directory
type Matcher struct {
	Dir  string
	stem string
	g    glob.Glob
}

// Matcher builds a Matcher for a tracked path
func (c *Codec) Matcher(tracked string) (*Matcher, error) {
	dir, pattern := c.SearchPattern(tracked)
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile backup pattern %q: %v", pattern, err)
	}
	_, name := c.stem(tracked)
	return &Matcher{Dir: dir, stem: name, g: g}, nil
}

// Match a file name from the backup directory.
//
// It returns false for unrelated names, including the backups of another file
// whose name starts with the same stem (e.g. "notes.txt.~1~.~2~").
func (m *Matcher) Match(name string) (model.Tag, bool, error) {
	// checked first: with a stem containing ".~", it also reads as a malformed numbered name
	if name == m.stem+Marker {
		return model.Previous, true, nil
	}
	if !m.g.Match(name) {
		return model.Current, false, nil
	}
	stem, tag, err := SplitName(name)
	if err != nil {
		return model.Current, true, err
	}
	if stem != m.stem || tag.IsCurrent() {
		return model.Current, false, nil
	}
	return tag, true, nil
}
