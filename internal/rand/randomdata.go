// Copyright © 2018 One Concern

// Package rand generates random file names and paths for tests.
package rand

import (
	"math/rand"
	"path"
	"strings"
	"sync"
	"time"
)

const (
	letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"

	// characters appearing in real file names which are special to backup names
	trickyBytes = "!. -_[]{}*?"
)

var (
	onceSource sync.Once
	rgen       *rand.Rand
	randMutex  sync.Mutex
)

func seed() {
	rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
}

func intn(n int) int {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Intn(n)
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = letterBytes[intn(len(letterBytes))]
	}
	return string(buf)
}

// FileName returns a random file name of at most n characters.
//
// Names mix letters with characters special to backup names or glob patterns.
// They never contain "~" and never start or end with a special character.
func FileName(n int) string {
	if n < 1 {
		n = 1
	}
	size := 1 + intn(n)
	buf := make([]byte, size)
	for i := range buf {
		if intn(4) == 0 {
			buf[i] = trickyBytes[intn(len(trickyBytes))]
			continue
		}
		buf[i] = letterBytes[intn(len(letterBytes))]
	}
	// the first and last characters are letters
	buf[0] = letterBytes[intn(len(letterBytes))]
	buf[size-1] = letterBytes[intn(len(letterBytes))]
	return string(buf)
}

// TrackedPath returns a random absolute path with up to depth directories
func TrackedPath(depth, n int) string {
	parts := make([]string, 0, depth+1)
	for i := intn(depth + 1); i > 0; i-- {
		parts = append(parts, FileName(n))
	}
	parts = append(parts, FileName(n))
	return path.Clean("/" + strings.Join(parts, "/"))
}
