// Copyright © 2018 One Concern

package core

import (
	"fmt"
	"path/filepath"

	"github.com/oneconcern/vcbackup/pkg/diff"
	"github.com/oneconcern/vcbackup/pkg/model"
)

// Diff compares two revisions of a tracked file. By default, the current revision
// is compared to the most recent backup.
//
// Both revisions are resolved first, and a revision which cannot be resolved fails
// the comparison.
func (h *History) Diff(tracked string, opts ...DiffOption) (diff.Result, error) {
	tracked = normalize(tracked)
	options := diffOptionsWithDefaults(opts)

	a, b := model.Current, model.Current
	if options.a != nil && options.b != nil {
		a, b = *options.a, *options.b
	} else {
		last, err := h.LastRevision(tracked)
		if err != nil {
			return diff.Result{}, err
		}
		b = last
	}

	pathA, err := h.Resolve(tracked, a)
	if err != nil {
		return diff.Result{}, err
	}
	pathB, err := h.Resolve(tracked, b)
	if err != nil {
		return diff.Result{}, err
	}

	name := filepath.Base(tracked)
	return h.differ.Diff(pathA, pathB, diff.Options{
		Context: options.context,
		LabelA:  fmt.Sprintf("%s (%s)", name, a),
		LabelB:  fmt.Sprintf("%s (%s)", name, b),
	})
}
