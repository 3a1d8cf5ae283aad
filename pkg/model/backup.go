// Copyright © 2018 One Concern

package model

import (
	"time"
)

// Backup describes a backup file found on disk for a tracked file
type Backup struct {
	Path    string    `json:"path" yaml:"path"`
	Tracked string    `json:"tracked" yaml:"tracked"`
	Tag     Tag       `json:"tag" yaml:"tag"`
	ModTime time.Time `json:"modTime" yaml:"modTime"`
	Size    int64     `json:"size" yaml:"size"`
	Owner   string    `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// Backups is a list of backups, most recent first
type Backups []Backup

// Tags returns the tags of the backups, in the same order
func (b Backups) Tags() []Tag {
	tags := make([]Tag, 0, len(b))
	for _, backup := range b {
		tags = append(tags, backup.Tag)
	}
	return tags
}

// Find the backup carrying some tag
func (b Backups) Find(tag Tag) (Backup, bool) {
	for _, backup := range b {
		if backup.Tag == tag {
			return backup, true
		}
	}
	return Backup{}, false
}
