package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oneconcern/vcbackup/pkg/diff"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tracked = "/work/notes.txt"

var epoch = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

type fileFixture struct {
	path    string
	content string
	// modification time, in minutes after epoch
	minutes int
}

func writeFiles(t *testing.T, fs afero.Fs, files ...fileFixture) {
	for _, f := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f.path), 0755))
		require.NoError(t, afero.WriteFile(fs, f.path, []byte(f.content), 0644))
		ts := epoch.Add(time.Duration(f.minutes) * time.Minute)
		require.NoError(t, fs.Chtimes(f.path, ts, ts))
	}
}

func setupHistory(t *testing.T, files ...fileFixture) (*History, afero.Fs) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, files...)
	return New(WithFs(fs)), fs
}

// scenarioFiles: notes.txt.~1~ (oldest), notes.txt.~2~, notes.txt~ (newest)
func scenarioFiles() []fileFixture {
	return []fileFixture{
		{path: tracked, content: "line 1\nline 2 edited\nline 3\n", minutes: 100},
		{path: "/work/notes.txt.~1~", content: "line 1\n", minutes: 1},
		{path: "/work/notes.txt.~2~", content: "line 1\nline 2\n", minutes: 2},
		{path: "/work/notes.txt~", content: "line 1\nline 2\nline 3\n", minutes: 3},
	}
}

func readString(t *testing.T, fs afero.Fs, path string) string {
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

// failingFs fails Remove and Rename on selected paths
type failingFs struct {
	afero.Fs
	failOn map[string]bool
}

func newFailingFs(fs afero.Fs, paths ...string) *failingFs {
	f := &failingFs{Fs: fs, failOn: make(map[string]bool, len(paths))}
	for _, p := range paths {
		f.failOn[p] = true
	}
	return f
}

func (f *failingFs) Remove(name string) error {
	if f.failOn[name] {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Remove(name)
}

func (f *failingFs) Rename(oldname, newname string) error {
	if f.failOn[oldname] {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}

type mockDiffer struct {
	mock.Mock
}

func (m *mockDiffer) Diff(pathA, pathB string, opts diff.Options) (diff.Result, error) {
	args := m.Called(pathA, pathB, opts)
	return args.Get(0).(diff.Result), args.Error(1)
}
