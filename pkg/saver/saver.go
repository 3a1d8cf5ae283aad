// Copyright © 2018 One Concern

// Package saver writes backups of tracked files, the way an editor does on save.
//
// It is the only component creating backup files. The history core only reads them.
package saver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// VersionControl selects between numbered and unnumbered backups
type VersionControl string

const (
	// Existing makes numbered backups for files that already have some, unnumbered ones otherwise
	Existing VersionControl = "existing"
	// Always makes numbered backups
	Always VersionControl = "always"
	// Never makes unnumbered backups
	Never VersionControl = "never"
)

const (
	defaultKeptNew = 2
	defaultKeptOld = 2
)

// ParseVersionControl parses a version control setting. The empty string means Existing.
func ParseVersionControl(s string) (VersionControl, error) {
	switch vc := VersionControl(s); vc {
	case "":
		return Existing, nil
	case Existing, Always, Never:
		return vc, nil
	default:
		return "", fmt.Errorf("invalid version control %q: expected one of %q, %q or %q", s, Existing, Always, Never)
	}
}

// Saver makes a fresh backup of a tracked file and returns its path
type Saver interface {
	ForceBackup(tracked string) (string, error)
}

// Option configures a backup saver
type Option func(*saver)

// WithVersionControl sets the numbering policy. It defaults to Existing.
func WithVersionControl(vc VersionControl) Option {
	return func(s *saver) {
		s.versionControl = vc
	}
}

// WithKeptVersions sets the number of newest and oldest numbered backups kept when pruning.
// It defaults to 2 and 2.
func WithKeptVersions(keptNew, keptOld int) Option {
	return func(s *saver) {
		if keptNew > 0 {
			s.keptNew = keptNew
		}
		if keptOld >= 0 {
			s.keptOld = keptOld
		}
	}
}

// WithPrune enables the deletion of excess numbered backups
func WithPrune(enabled bool) Option {
	return func(s *saver) {
		s.prune = enabled
	}
}

// WithLogger sets a logger
func WithLogger(l *zap.Logger) Option {
	return func(s *saver) {
		if l != nil {
			s.l = l
		}
	}
}

type saver struct {
	fs             afero.Fs
	codec          *naming.Codec
	versionControl VersionControl
	keptNew        int
	keptOld        int
	prune          bool
	l              *zap.Logger
}

// New builds a backup saver writing on some filesystem, with the naming convention of a codec
func New(fs afero.Fs, codec *naming.Codec, opts ...Option) Saver {
	s := &saver{
		fs:             fs,
		codec:          codec,
		versionControl: Existing,
		keptNew:        defaultKeptNew,
		keptOld:        defaultKeptOld,
		l:              zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// versions lists the numbers of the existing numbered backups, in increasing order
func (s *saver) versions(tracked string) ([]uint64, error) {
	matcher, err := s.codec.Matcher(tracked)
	if err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(s.fs, matcher.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var numbers []uint64
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		tag, ok, err := matcher.Match(info.Name())
		if err != nil {
			s.l.Warn("ignoring malformed backup", zap.String("name", info.Name()), zap.Error(err))
			continue
		}
		if ok && tag.N > 0 {
			numbers = append(numbers, tag.N)
		}
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	return numbers, nil
}

func (s *saver) ForceBackup(tracked string) (string, error) {
	tracked = filepath.Clean(tracked)
	info, err := s.fs.Stat(tracked)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("cannot back up %s: not a regular file", tracked)
	}

	numbers, err := s.versions(tracked)
	if err != nil {
		return "", errors.Wrapf(err, "listing backups of %s", tracked)
	}

	var target string
	numbered := s.versionControl == Always || (s.versionControl == Existing && len(numbers) > 0)
	if numbered {
		next := uint64(1)
		if len(numbers) > 0 {
			next = numbers[len(numbers)-1] + 1
		}
		target = s.codec.NumberedName(tracked, next)
		numbers = append(numbers, next)
	} else {
		target = s.codec.UnnumberedName(tracked)
	}

	if err := s.copy(tracked, target, info.Mode().Perm()); err != nil {
		return "", err
	}
	s.l.Debug("backup created", zap.String("tracked", tracked), zap.String("backup", target))

	if numbered && s.prune {
		s.pruneVersions(tracked, numbers)
	}
	return target, nil
}

func (s *saver) copy(src, dst string, perm os.FileMode) error {
	content, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return errors.Wrapf(err, "reading %s", src)
	}
	if err := s.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, "creating backup directory for %s", dst)
	}
	if err := afero.WriteFile(s.fs, dst, content, perm); err != nil {
		return errors.Wrapf(err, "writing backup %s", dst)
	}
	return nil
}

// pruneVersions removes the numbered backups between the keptOld oldest and the keptNew newest.
func (s *saver) pruneVersions(tracked string, numbers []uint64) {
	if len(numbers) <= s.keptNew+s.keptOld {
		return
	}
	for _, n := range numbers[s.keptOld : len(numbers)-s.keptNew] {
		name := s.codec.NumberedName(tracked, n)
		if err := s.fs.Remove(name); err != nil {
			s.l.Warn("cannot remove excess backup", zap.String("backup", name), zap.Error(err))
			continue
		}
		s.l.Debug("excess backup removed", zap.String("backup", name))
	}
}
