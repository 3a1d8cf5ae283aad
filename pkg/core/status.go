// Copyright © 2018 One Concern

package core

import (
	"bytes"
	"os"

	"github.com/oneconcern/vcbackup/pkg/model"
)

// Status summarizes the history of a tracked file
type Status struct {
	Tracked   string
	Exists    bool
	Trackable bool
	Revisions int
	Last      model.Tag
	// Modified tells if the current content differs from the last backup, by fingerprint
	Modified bool
}

// Checksum computes the fingerprint of a revision: a blake2b tree digest of its content
func (h *History) Checksum(tracked string, tag model.Tag) ([]byte, error) {
	path, err := h.Resolve(tracked, tag)
	if err != nil {
		return nil, err
	}
	digest, err := h.fingerprints.ProcessFile(h.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNotFound.Wrapf("%s of %s: %v", tag, tracked, err)
		}
		return nil, err
	}
	return digest, nil
}

// Status of a tracked file
func (h *History) Status(tracked string) (Status, error) {
	tracked = normalize(tracked)
	st := Status{Tracked: tracked}

	if _, err := h.fs.Stat(tracked); err == nil {
		st.Exists = true
	} else if !os.IsNotExist(err) {
		return st, err
	}

	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return st, err
	}
	st.Revisions = len(backups)
	st.Trackable = len(backups) > 0
	if !st.Trackable {
		return st, nil
	}
	st.Last = backups[0].Tag

	if !st.Exists {
		st.Modified = true
		return st, nil
	}
	current, err := h.Checksum(tracked, model.Current)
	if err != nil {
		return st, err
	}
	last, err := h.Checksum(tracked, st.Last)
	if err != nil {
		return st, err
	}
	st.Modified = !bytes.Equal(current, last)
	return st, nil
}
