package diff

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	ts := time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, content := range map[string]string{
		"/work/a.txt":  "one\ntwo\nthree\n",
		"/work/a2.txt": "one\ntwo\nthree\n",
		"/work/b.txt":  "one\n2\nthree\nfour\n",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
		require.NoError(t, fs.Chtimes(name, ts, ts))
	}
	require.NoError(t, fs.MkdirAll("/work/dir", 0755))
	return fs
}

func TestDiff(t *testing.T) {
	differ := New(setupFs(t))

	res, err := differ.Diff("/work/a.txt", "/work/a2.txt", Options{})
	require.NoError(t, err)
	assert.False(t, res.HasDifferences)
	assert.Empty(t, res.Text)

	res, err = differ.Diff("/work/a.txt", "/work/b.txt", Options{Context: -1, LabelA: "a.txt (previous)", LabelB: "a.txt (current)"})
	require.NoError(t, err)
	assert.True(t, res.HasDifferences)
	assert.Contains(t, res.Text, "--- a.txt (previous)\t2020-03-01 10:00:00")
	assert.Contains(t, res.Text, "+++ a.txt (current)\t")
	assert.Contains(t, res.Text, "-two\n")
	assert.Contains(t, res.Text, "+2\n")
	assert.Contains(t, res.Text, "+four\n")
}

func TestDiffErrors(t *testing.T) {
	differ := New(setupFs(t))

	_, err := differ.Diff("/work/a.txt", "/work/missing.txt", Options{})
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errorsCause(err)))

	_, err = differ.Diff("/work/dir", "/work/a.txt", Options{})
	require.Error(t, err)
}
