// Copyright © 2018 One Concern

package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ListBackups lists the backups of one or several tracked files, most recent first.
//
// Recency is the modification time of the backup files. Backups with the same
// modification time are ordered unnumbered first, then by decreasing number.
//
// A tracked file without backups contributes nothing: this is not an error.
// When listing fails for some of the tracked files, the backups of the other
// ones are still returned, along with the accumulated errors.
func (h *History) ListBackups(tracked ...string) (model.Backups, error) {
	var (
		backups model.Backups
		errs    error
	)
	owners := newOwnerCache()
	seen := make(map[string]struct{}, len(tracked))
	keys := make([]string, 0, len(tracked))

	for _, path := range tracked {
		path = normalize(path)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		keys = append(keys, path)
	}

	events := h.lister.List(keys, func(path string) (model.Backups, error) {
		return h.listBackups(path, owners)
	})
	for _, event := range events {
		if event.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("listing backups of %s: %w", event.Key, event.Err))
			continue
		}
		backups = append(backups, event.Backups...)
	}

	sortByRecency(backups)
	return backups, errs
}

func (h *History) listBackups(tracked string, owners *ownerCache) (model.Backups, error) {
	matcher, err := h.codec.Matcher(tracked)
	if err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(h.fs, matcher.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups model.Backups
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		tag, ok, err := matcher.Match(info.Name())
		if err != nil {
			h.l.Warn("skipping backup with malformed name",
				zap.String("tracked", tracked),
				zap.String("name", info.Name()),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			continue
		}
		backups = append(backups, model.Backup{
			Path:    filepath.Join(matcher.Dir, info.Name()),
			Tracked: tracked,
			Tag:     tag,
			ModTime: info.ModTime(),
			Size:    info.Size(),
			Owner:   owners.ownerOf(info),
		})
	}

	h.l.Debug("backups listed", zap.String("tracked", tracked), zap.Int("count", len(backups)))
	return backups, nil
}

func sortByRecency(backups model.Backups) {
	sort.SliceStable(backups, func(i, j int) bool {
		a, b := backups[i], backups[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		if a.Tag.Kind != b.Tag.Kind {
			return a.Tag.Kind == model.KindPrevious
		}
		if a.Tag.N != b.Tag.N {
			return a.Tag.N > b.Tag.N
		}
		return a.Path > b.Path
	})
}
