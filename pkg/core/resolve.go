// Copyright © 2018 One Concern

package core

import (
	"os"

	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/spf13/afero"
)

// Resolve returns the path of the file holding a revision.
//
// The current revision resolves to the tracked file, without checking that it exists.
// Backups are looked up on disk, and a missing backup yields model.ErrNotFound.
// No other revision is ever substituted.
func (h *History) Resolve(tracked string, tag model.Tag) (string, error) {
	tracked = normalize(tracked)

	switch tag.Kind {
	case model.KindCurrent:
		return tracked, nil

	case model.KindPrevious:
		path := h.codec.UnnumberedName(tracked)
		info, err := h.fs.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", model.ErrNotFound.Wrapf("%s of %s", tag, tracked)
			}
			return "", err
		}
		if info.IsDir() {
			return "", model.ErrNotFound.Wrapf("%s of %s: %s is a directory", tag, tracked, path)
		}
		return path, nil

	default:
		backups, err := h.ListTaggedBackups(tracked)
		if err != nil {
			return "", err
		}
		backup, ok := backups.Find(tag)
		if !ok {
			return "", model.ErrNotFound.Wrapf("%s of %s", tag, tracked)
		}
		return backup.Path, nil
	}
}

// Open a revision for reading
func (h *History) Open(tracked string, tag model.Tag) (afero.File, error) {
	path, err := h.Resolve(tracked, tag)
	if err != nil {
		return nil, err
	}
	f, err := h.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// removed since it was resolved
			return nil, model.ErrNotFound.Wrapf("%s of %s: %v", tag, tracked, err)
		}
		return nil, err
	}
	return f, nil
}
