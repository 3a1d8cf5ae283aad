// Copyright © 2018 One Concern

package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DeleteAll removes a tracked file and all its backups.
//
// Backups are removed first and the tracked file last, so an interruption never
// leaves backups without their tracked file. There is no atomicity: every backup is
// attempted, and failures are reported as a *model.PartialOperationFailure listing
// what remains. When some backup could not be removed, the tracked file is kept.
// The operation may be run again to resume.
func (h *History) DeleteAll(tracked string) error {
	tracked = normalize(tracked)

	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return err
	}

	failure := &model.PartialOperationFailure{Op: "delete"}
	for _, backup := range backups {
		if err := h.fs.Remove(backup.Path); err != nil && !os.IsNotExist(err) {
			h.l.Warn("cannot delete backup", zap.String("backup", backup.Path), zap.Error(err))
			failure.Add(backup.Path, err)
			continue
		}
		h.l.Debug("backup deleted", zap.String("backup", backup.Path))
	}

	if len(failure.Failed) > 0 {
		failure.Failed = append(failure.Failed, tracked)
		return failure
	}

	if err := h.fs.Remove(tracked); err != nil && !os.IsNotExist(err) {
		failure.Add(tracked, err)
		return failure
	}
	h.l.Info("deleted", zap.String("tracked", tracked), zap.Int("backups", len(backups)))
	return nil
}

// RenameAll renames a tracked file, then moves all its backups along.
//
// The target must have neither a tracked file nor backups. A failure to rename the
// tracked file aborts the operation with nothing changed.
// Afterwards there is no rollback: every backup is attempted, and failures are
// reported as a *model.PartialOperationFailure listing the backups left under the
// old name, to be reconciled manually.
func (h *History) RenameAll(oldTracked, newTracked string) error {
	oldTracked, newTracked = normalize(oldTracked), normalize(newTracked)
	if oldTracked == newTracked {
		return nil
	}

	exists, err := afero.Exists(h.fs, newTracked)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("cannot rename %s to %s: %w", oldTracked, newTracked, os.ErrExist)
	}

	// backups left under the new name belong to another history
	stale, err := h.ListTaggedBackups(newTracked)
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		return fmt.Errorf("cannot rename %s to %s: %s has backups: %w", oldTracked, newTracked, newTracked, os.ErrExist)
	}

	backups, err := h.ListTaggedBackups(oldTracked)
	if err != nil {
		return err
	}

	if err := h.fs.MkdirAll(filepath.Dir(newTracked), 0755); err != nil {
		return err
	}
	if err := h.fs.Rename(oldTracked, newTracked); err != nil {
		return err
	}

	failure := &model.PartialOperationFailure{Op: "rename"}
	for _, backup := range backups {
		target := h.codec.BackupName(newTracked, backup.Tag)
		if err := h.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			failure.Add(backup.Path, err)
			continue
		}
		if err := h.fs.Rename(backup.Path, target); err != nil {
			h.l.Warn("cannot rename backup", zap.String("backup", backup.Path), zap.String("target", target), zap.Error(err))
			failure.Add(backup.Path, err)
			continue
		}
		h.l.Debug("backup renamed", zap.String("backup", backup.Path), zap.String("target", target))
	}

	if err := failure.ErrOrNil(); err != nil {
		return err
	}
	h.l.Info("renamed", zap.String("from", oldTracked), zap.String("to", newTracked), zap.Int("backups", len(backups)))
	return nil
}
