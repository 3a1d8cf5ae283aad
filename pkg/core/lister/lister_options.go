// Copyright © 2018 One Concern

package lister

// Option is a functor to define lister settings
type Option func(*Lister)

// Concurrency sets the max level of concurrency to list tracked files. It defaults to 2 x #cpus.
func Concurrency(concurrent int) Option {
	return func(l *Lister) {
		if concurrent != 0 {
			l.concurrent = concurrent
		}
	}
}
