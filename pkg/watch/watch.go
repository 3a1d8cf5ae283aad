// Copyright © 2018 One Concern

// Package watch follows the history of tracked files as backups come and go.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

// Lister knows where the backups of a tracked file live, and how to list them
type Lister interface {
	Codec() *naming.Codec
	ListTaggedBackups(tracked string) (model.Backups, error)
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the delay during which filesystem events are coalesced before listing backups again
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets a logger
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.l = l
		}
	}
}

// Watcher emits the list of backups of a tracked file whenever it changes
type Watcher struct {
	lister   Lister
	debounce time.Duration
	l        *zap.Logger
}

// New watcher over some history
func New(lister Lister, opts ...Option) *Watcher {
	w := &Watcher{
		lister:   lister,
		debounce: defaultDebounce,
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(w)
	}
	return w
}

// Watch the backup directory of a tracked file.
//
// The returned channel first receives the current backups, then a fresh listing each
// time a backup is created, removed, renamed or overwritten. It is closed when the
// context is done, or when watching fails.
//
// The backup directory must exist.
func (w *Watcher) Watch(ctx context.Context, tracked string) (<-chan model.Backups, error) {
	abs, err := filepath.Abs(tracked)
	if err != nil {
		return nil, err
	}
	tracked = abs

	matcher, err := w.lister.Codec().Matcher(tracked)
	if err != nil {
		return nil, err
	}

	initial, err := w.lister.ListTaggedBackups(tracked)
	if err != nil {
		return nil, err
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating filesystem watcher")
	}
	if err := notifier.Add(matcher.Dir); err != nil {
		_ = notifier.Close()
		return nil, errors.Wrapf(err, "watching backup directory %s", matcher.Dir)
	}
	w.l.Debug("watching backups", zap.String("tracked", tracked), zap.String("dir", matcher.Dir))

	updates := make(chan model.Backups, 1)
	go w.run(ctx, notifier, matcher, tracked, initial, updates)
	return updates, nil
}

func (w *Watcher) run(ctx context.Context, notifier *fsnotify.Watcher, matcher *naming.Matcher, tracked string, last model.Backups, updates chan<- model.Backups) {
	defer close(updates)
	defer func() {
		if err := notifier.Close(); err != nil {
			w.l.Warn("closing filesystem watcher", zap.Error(err))
		}
	}()

	send := func(backups model.Backups) bool {
		select {
		case updates <- backups:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(last) {
		return
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-notifier.Events:
			if !ok {
				return
			}
			if !w.relevant(matcher, event) {
				continue
			}
			if fire == nil {
				fire = time.After(w.debounce)
			}

		case err, ok := <-notifier.Errors:
			if !ok {
				return
			}
			w.l.Warn("filesystem watcher error", zap.String("tracked", tracked), zap.Error(err))

		case <-fire:
			fire = nil
			backups, err := w.lister.ListTaggedBackups(tracked)
			if err != nil {
				w.l.Warn("cannot list backups", zap.String("tracked", tracked), zap.Error(err))
				continue
			}
			if sameBackups(last, backups) {
				continue
			}
			last = backups
			if !send(backups) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(matcher *naming.Matcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
		return false
	}
	if filepath.Dir(event.Name) != matcher.Dir {
		return false
	}
	// malformed names are relevant: listing reports them
	_, ok, _ := matcher.Match(filepath.Base(event.Name))
	return ok
}

func sameBackups(a, b model.Backups) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path || !a[i].ModTime.Equal(b[i].ModTime) || a[i].Size != b[i].Size {
			return false
		}
	}
	return true
}
