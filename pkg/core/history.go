// Copyright © 2018 One Concern

package core

import (
	"path/filepath"

	"github.com/oneconcern/vcbackup/pkg/core/lister"
	"github.com/oneconcern/vcbackup/pkg/diff"
	"github.com/oneconcern/vcbackup/pkg/fingerprint"
	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/oneconcern/vcbackup/pkg/saver"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// History gives the revision history of tracked files, as recorded by their backups.
//
// A History holds no state about the files it serves: every call reads the
// filesystem again, since backups may be created, removed or renamed by other
// processes at any time. A missing file at resolution time is reported as
// model.ErrNotFound.
type History struct {
	fs     afero.Fs
	codec  *naming.Codec
	differ diff.Differ
	saver  saver.Saver
	l      *zap.Logger

	fingerprints *fingerprint.Maker
	lister       *lister.Lister
}

// New history, on the OS filesystem with backups next to their tracked files, unless specified otherwise
func New(opts ...Option) *History {
	h := &History{
		fs:    afero.NewOsFs(),
		codec: naming.Default(),
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(h)
	}
	if h.differ == nil {
		h.differ = diff.New(h.fs)
	}
	if h.fingerprints == nil {
		h.fingerprints = fingerprint.New()
	}
	if h.lister == nil {
		h.lister = lister.New()
	}
	if h.saver == nil {
		h.saver = saver.New(h.fs, h.codec, saver.WithLogger(h.l))
	}
	return h
}

// Codec used to name backups
func (h *History) Codec() *naming.Codec {
	return h.codec
}

// Fs is the filesystem holding tracked files and backups
func (h *History) Fs() afero.Fs {
	return h.fs
}

// normalize a tracked path. Relative paths are resolved against the working directory.
func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
