// Copyright © 2018 One Concern

package core

import (
	"io"
	"os"

	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Checkin asks the backup saver for a fresh backup of the tracked file, and returns its tag
func (h *History) Checkin(tracked string) (model.Tag, error) {
	tracked = normalize(tracked)
	path, err := h.saver.ForceBackup(tracked)
	if err != nil {
		return model.Current, err
	}
	h.l.Info("checked in", zap.String("tracked", tracked), zap.String("backup", path))
	return naming.ExtractTag(path)
}

// Restore replaces the content of the tracked file with some revision.
//
// With keepCurrent, the current content is backed up first. The revision is read
// before that backup is made, since making it may overwrite the unnumbered backup.
func (h *History) Restore(tracked string, tag model.Tag, keepCurrent bool) error {
	tracked = normalize(tracked)
	if tag.IsCurrent() {
		return nil
	}

	f, err := h.Open(tracked, tag)
	if err != nil {
		return err
	}
	content, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	perm := os.FileMode(0644)
	info, err := h.fs.Stat(tracked)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
		if keepCurrent {
			if _, err := h.Checkin(tracked); err != nil {
				return err
			}
		}
	case !os.IsNotExist(err):
		return err
	}

	if err := afero.WriteFile(h.fs, tracked, content, perm); err != nil {
		return err
	}
	h.l.Info("restored", zap.String("tracked", tracked), zap.Stringer("revision", tag))
	return nil
}
