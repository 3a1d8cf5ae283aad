// Copyright © 2018 One Concern

// Package lister lists the backups of many tracked files concurrently.
package lister

import (
	"runtime"
	"sync"

	"github.com/oneconcern/vcbackup/pkg/model"
)

var (
	defaultConcurrency = 2 * runtime.NumCPU()
)

// FetchFunc lists the backups of a single tracked file
type FetchFunc func(string) (model.Backups, error)

// Event holds the backups of a tracked file, or the error met while listing them
type Event struct {
	Key     string
	Backups model.Backups
	Err     error
}

// Lister provides support to efficiently list the backups of a collection of tracked files.
//
// Each tracked file is listed by a separate goroutine, with a bounded concurrency.
// Directory listings dominate, so this pays off when files live in different directories.
type Lister struct {
	concurrent int
}

func defaultLister() *Lister {
	return &Lister{
		concurrent: defaultConcurrency,
	}
}

// New builds a new Lister
func New(opts ...Option) *Lister {
	l := defaultLister()
	for _, apply := range opts {
		apply(l)
	}
	return l
}

// List applies a fetch function to all keys and returns the outcome for each key, in the order of keys.
//
// Failing keys do not interrupt the others.
func (l *Lister) List(keys []string, fetch FetchFunc) []Event {
	events := make([]Event, len(keys))
	if len(keys) == 0 {
		return events
	}

	if len(keys) == 1 || l.concurrent <= 1 {
		for i, key := range keys {
			backups, err := fetch(key)
			events[i] = Event{Key: key, Backups: backups, Err: err}
		}
		return events
	}

	var wg sync.WaitGroup
	throttle := make(chan struct{}, l.concurrent)
	for i, key := range keys {
		throttle <- struct{}{}
		wg.Add(1)
		go func(i int, key string) {
			defer func() {
				<-throttle
				wg.Done()
			}()
			backups, err := fetch(key)
			// each goroutine owns its slot
			events[i] = Event{Key: key, Backups: backups, Err: err}
		}(i, key)
	}
	wg.Wait()

	return events
}
