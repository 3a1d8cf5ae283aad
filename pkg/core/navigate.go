// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/vcbackup/pkg/model"
)

// timeline is the sequence of revisions of a tracked file, from the current one to the oldest backup
func (h *History) timeline(tracked string) ([]model.Tag, error) {
	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return nil, err
	}
	return append([]model.Tag{model.Current}, backups.Tags()...), nil
}

func indexOf(tags []model.Tag, tag model.Tag) int {
	for i, t := range tags {
		if t == tag {
			return i
		}
	}
	return -1
}

// Previous returns the revision right before some revision.
//
// From the current revision, it is the most recent backup. The second return value
// is false when there is no older revision, or when the tag is not in the history.
func (h *History) Previous(tracked string, tag model.Tag) (model.Tag, bool, error) {
	tags, err := h.timeline(tracked)
	if err != nil {
		return model.Current, false, err
	}
	i := indexOf(tags, tag)
	if i < 0 || i+1 >= len(tags) {
		return model.Current, false, nil
	}
	return tags[i+1], true, nil
}

// Next returns the revision right after some revision.
//
// After the most recent backup comes the current revision. The second return value
// is false for the current revision, or when the tag is not in the history.
func (h *History) Next(tracked string, tag model.Tag) (model.Tag, bool, error) {
	tags, err := h.timeline(tracked)
	if err != nil {
		return model.Current, false, err
	}
	i := indexOf(tags, tag)
	if i <= 0 {
		return model.Current, false, nil
	}
	return tags[i-1], true, nil
}
