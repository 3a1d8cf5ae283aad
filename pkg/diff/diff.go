// Copyright © 2018 One Concern

// Package diff compares two files and renders the differences as a unified diff.
package diff

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// DefaultContext is the number of context lines around each hunk
const DefaultContext = 3

const dateFormat = "2006-01-02 15:04:05.000000000 -0700"

// Options for a comparison
type Options struct {
	// Context lines around each hunk. Negative values mean DefaultContext.
	Context int
	// LabelA and LabelB replace the file paths in the diff header
	LabelA string
	LabelB string
}

// Result of a comparison
type Result struct {
	HasDifferences bool
	Text           string
}

// Differ compares two files
type Differ interface {
	Diff(pathA, pathB string, opts Options) (Result, error)
}

// New builds a Differ rendering unified diffs for files on some filesystem
func New(fs afero.Fs) Differ {
	return &unified{fs: fs}
}

type unified struct {
	fs afero.Fs
}

func (u *unified) read(path string) ([]byte, time.Time, error) {
	info, err := u.fs.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	if info.IsDir() {
		return nil, time.Time{}, errors.Errorf("%s is a directory", path)
	}
	content, err := afero.ReadFile(u.fs, path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return content, info.ModTime(), nil
}

func (u *unified) Diff(pathA, pathB string, opts Options) (Result, error) {
	a, timeA, err := u.read(pathA)
	if err != nil {
		return Result{}, errors.Wrapf(err, "reading %s", pathA)
	}
	b, timeB, err := u.read(pathB)
	if err != nil {
		return Result{}, errors.Wrapf(err, "reading %s", pathB)
	}

	if bytes.Equal(a, b) {
		return Result{}, nil
	}

	labelA, labelB := pathA, pathB
	if opts.LabelA != "" {
		labelA = opts.LabelA
	}
	if opts.LabelB != "" {
		labelB = opts.LabelB
	}
	context := opts.Context
	if context < 0 {
		context = DefaultContext
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: labelA,
		FromDate: timeA.Format(dateFormat),
		ToFile:   labelB,
		ToDate:   timeB.Format(dateFormat),
		Context:  context,
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "rendering diff")
	}

	return Result{
		HasDifferences: true,
		Text:           text,
	}, nil
}
