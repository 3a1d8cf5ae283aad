// Copyright © 2018 One Concern

// Package fingerprint computes blake2b tree digests of file contents.
//
// Contents are split in leaves hashed concurrently, then the leaf digests are
// hashed into a root digest. Contents no larger than a leaf are hashed the same way,
// so digests only compare with digests computed with the same leaf size.
package fingerprint

import (
	"bytes"
	"io"
	"runtime"
	"sync"

	units "github.com/docker/go-units"
	blake2b "github.com/minio/blake2b-simd"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultLeafSize is the size of the leaves hashed concurrently
const DefaultLeafSize = 5 * units.MiB

type chunkInput struct {
	part       int
	partBuffer []byte
	lastChunk  bool
}

type chunkOutput struct {
	digest []byte
	part   int
	err    error
}

// Option configures a Maker
type Option func(*Maker)

// LeafSize sets the size of leaves
func LeafSize(sz int64) Option {
	return func(m *Maker) {
		if sz > 0 {
			m.leafSize = uint32(sz)
		}
	}
}

// NumberOfWorkers sets the number of leaves hashed concurrently
func NumberOfWorkers(no int) Option {
	return func(m *Maker) {
		if no > 0 {
			m.numberOfWorkers = no
		}
	}
}

// Size sets the size of leaf digests, at most 64 bytes
func Size(sz uint8) Option {
	return func(m *Maker) {
		if sz > 0 && sz <= blake2b.Size {
			m.size = sz
		}
	}
}

// New fingerprint maker
func New(opts ...Option) *Maker {
	m := &Maker{
		leafSize:        uint32(DefaultLeafSize),
		numberOfWorkers: runtime.NumCPU(),
		size:            blake2b.Size,
	}

	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Maker computes fingerprints
type Maker struct {
	size            uint8
	leafSize        uint32
	numberOfWorkers int
}

// ProcessFile computes the fingerprint of a file
func (m *Maker) ProcessFile(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, errors.Errorf("cannot fingerprint %s: is a directory", path)
	}
	digest, err := m.Process(f, fi.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "fingerprint of %s", path)
	}
	return digest, nil
}

// Process computes the fingerprint of some content of a known size
func (m *Maker) Process(r io.Reader, size int64) ([]byte, error) {
	var wg sync.WaitGroup
	chunks := make(chan chunkInput)
	results := make(chan chunkOutput)
	done := make(chan struct{})
	readErr := make(chan error, 1)

	for i := 0; i < m.numberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.processChunk(chunks, results)
		}()
	}

	go func() {
		defer close(chunks)
		for part, totalSize := 0, int64(0); ; part++ {
			partBuffer := make([]byte, m.leafSize)
			n, e := io.ReadFull(r, partBuffer)
			if e != nil && e != io.ErrUnexpectedEOF {
				if e != io.EOF {
					readErr <- e
					return
				}
				if part > 0 {
					return
				}
				// empty content still has a leaf
			}
			partBuffer = partBuffer[:n]

			totalSize += int64(n)
			lastChunk := uint32(n) < m.leafSize || totalSize >= size

			select {
			case chunks <- chunkInput{part: part, partBuffer: partBuffer, lastChunk: lastChunk}:
			case <-done:
				return
			}

			if lastChunk {
				return
			}
		}
	}()

	// Wait for workers to complete
	go func() {
		wg.Wait()
		close(results) // Close output channel
	}()

	// number of chunks upfront is unknown for streams
	digestHash := make(map[int][]byte)
	var err error
	for res := range results {
		if res.err != nil && err == nil {
			err = res.err
			close(done)
		}
		digestHash[res.part] = res.digest
	}
	if err != nil {
		return nil, err
	}
	select {
	case err = <-readErr:
		return nil, err
	default:
	}

	// Concatenate digests of chunks
	sz := int(m.size)
	b := make([]byte, len(digestHash)*sz)
	for index, val := range digestHash {
		offset := sz * index
		copy(b[offset:offset+sz], val)
	}

	rootBlake, err := blake2b.New(&blake2b.Config{
		Size: blake2b.Size,
		Tree: &blake2b.Tree{
			Fanout:        0,
			MaxDepth:      2,
			LeafSize:      m.leafSize,
			NodeOffset:    0,
			NodeDepth:     1,
			InnerHashSize: m.size,
			IsLastNode:    true,
		},
	})
	if err != nil {
		return nil, err
	}

	// Compute top level digest
	if _, err = io.Copy(rootBlake, bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return rootBlake.Sum(nil), nil
}

// Worker routine for computing hash for a chunk
func (m *Maker) processChunk(rx <-chan chunkInput, tx chan<- chunkOutput) {
	for c := range rx {
		blake, err := blake2b.New(&blake2b.Config{
			Size: m.size,
			Tree: &blake2b.Tree{
				Fanout:        0,
				MaxDepth:      2,
				LeafSize:      m.leafSize,
				NodeOffset:    uint64(c.part),
				NodeDepth:     0,
				InnerHashSize: m.size,
				IsLastNode:    c.lastChunk,
			},
		})
		if err != nil {
			tx <- chunkOutput{part: c.part, err: err}
			continue
		}

		if _, err = blake.Write(c.partBuffer); err != nil {
			tx <- chunkOutput{part: c.part, err: err}
			continue
		}
		tx <- chunkOutput{digest: blake.Sum(nil), part: c.part}
	}
}
