// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/vcbackup/pkg/core/lister"
	"github.com/oneconcern/vcbackup/pkg/diff"
	"github.com/oneconcern/vcbackup/pkg/fingerprint"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/oneconcern/vcbackup/pkg/saver"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option is a functor to build a history with some options
type Option func(*History)

// WithFs sets the filesystem holding tracked files and backups
func WithFs(fs afero.Fs) Option {
	return func(h *History) {
		if fs != nil {
			h.fs = fs
		}
	}
}

// WithCodec sets the backup naming policy
func WithCodec(c *naming.Codec) Option {
	return func(h *History) {
		if c != nil {
			h.codec = c
		}
	}
}

// WithDiffer sets the diff service. It defaults to unified diffs on the history filesystem.
func WithDiffer(d diff.Differ) Option {
	return func(h *History) {
		h.differ = d
	}
}

// WithSaver sets the backup creation service. It defaults to a saver on the history filesystem.
func WithSaver(s saver.Saver) Option {
	return func(h *History) {
		h.saver = s
	}
}

// WithFingerprint sets how revisions are fingerprinted
func WithFingerprint(m *fingerprint.Maker) Option {
	return func(h *History) {
		h.fingerprints = m
	}
}

// WithConcurrency sets the number of tracked files listed concurrently
func WithConcurrency(concurrent int) Option {
	return func(h *History) {
		h.lister = lister.New(lister.Concurrency(concurrent))
	}
}

// WithLogger sets a logger
func WithLogger(l *zap.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.l = l
		}
	}
}

// DiffOption sets options for comparing revisions
type DiffOption func(*diffOptions)

type diffOptions struct {
	a, b    *model.Tag
	context int
}

func diffOptionsWithDefaults(opts []DiffOption) *diffOptions {
	o := &diffOptions{context: diff.DefaultContext}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// DiffRevisions sets the revisions to compare.
// They default to the current revision and the last backup.
func DiffRevisions(a, b model.Tag) DiffOption {
	return func(o *diffOptions) {
		o.a = &a
		o.b = &b
	}
}

// DiffContext sets the number of context lines around each hunk
func DiffContext(lines int) DiffOption {
	return func(o *diffOptions) {
		o.context = lines
	}
}
