// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/vcbackup/pkg/errors"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/oneconcern/vcbackup/pkg/naming"
)

// TrackedPath returns the tracked file a path belongs to: backups map to their
// tracked file, other paths are returned as absolute paths
//
// A name like "report.~draft~" is malformed as a numbered backup: it is read as the
// unnumbered backup of "report.~draft" when that tracked file exists.
func (h *History) TrackedPath(path string) (string, error) {
	path = normalize(path)
	tracked, err := h.codec.TrackedPath(path)
	if err != nil && errors.Is(err, model.ErrMalformedBackupName) {
		if candidate, ok := h.unnumberedOf(path); ok {
			return candidate, nil
		}
	}
	return tracked, err
}

// ExtractTag returns the revision tag carried by a path
func (h *History) ExtractTag(path string) (model.Tag, error) {
	tag, err := naming.ExtractTag(path)
	if err != nil && errors.Is(err, model.ErrMalformedBackupName) {
		if _, ok := h.unnumberedOf(normalize(path)); ok {
			return model.Previous, nil
		}
	}
	return tag, err
}

// unnumberedOf reads a malformed numbered backup name as an unnumbered backup,
// provided the tracked file it stands for exists
func (h *History) unnumberedOf(path string) (string, bool) {
	candidate, ok := h.codec.UnnumberedTrackedPath(path)
	if !ok {
		return "", false
	}
	if _, err := h.fs.Stat(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

// CurrentTagOf is the tag of the revision a path stands for: current for a tracked file
func (h *History) CurrentTagOf(path string) (model.Tag, error) {
	return h.ExtractTag(path)
}

// ListTaggedBackups lists the backups of a tracked file with their tags, most recent first
func (h *History) ListTaggedBackups(tracked string) (model.Backups, error) {
	return h.ListBackups(tracked)
}

// EnumerateRevisions lists the tags of the backups of a tracked file, most recent first
func (h *History) EnumerateRevisions(path string) ([]model.Tag, error) {
	tracked, err := h.TrackedPath(path)
	if err != nil {
		return nil, err
	}
	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return nil, err
	}
	return backups.Tags(), nil
}

// LastRevision is the tag of the most recent backup.
//
// It fails with model.ErrNoBackupsFound when the tracked file has no history.
func (h *History) LastRevision(tracked string) (model.Tag, error) {
	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return model.Current, err
	}
	if len(backups) == 0 {
		return model.Current, model.ErrNoBackupsFound.Wrapf("%s", normalize(tracked))
	}
	return backups[0].Tag, nil
}

// IsTrackable tells if a file has at least one backup
func (h *History) IsTrackable(path string) (bool, error) {
	tracked, err := h.TrackedPath(path)
	if err != nil {
		return false, err
	}
	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return false, err
	}
	return len(backups) > 0, nil
}
