package core

import (
	"io"
	"testing"

	"github.com/oneconcern/vcbackup/pkg/errors"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	h, fs := setupHistory(t, scenarioFiles()...)

	for _, fixture := range []struct {
		tag      model.Tag
		expected string
	}{
		{tag: model.Current, expected: tracked},
		{tag: model.Previous, expected: "/work/notes.txt~"},
		{tag: model.Numbered(1), expected: "/work/notes.txt.~1~"},
		{tag: model.Numbered(2), expected: "/work/notes.txt.~2~"},
	} {
		path, err := h.Resolve(tracked, fixture.tag)
		require.NoError(t, err, fixture.tag.String())
		assert.Equal(t, fixture.expected, path)
	}

	_, err := h.Resolve(tracked, model.Numbered(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	// removed behind our back: reported, never substituted
	require.NoError(t, fs.Remove("/work/notes.txt~"))
	_, err = h.Resolve(tracked, model.Previous)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	// the current revision is not checked
	path, err := h.Resolve("/work/gone.txt", model.Current)
	require.NoError(t, err)
	assert.Equal(t, "/work/gone.txt", path)
}

func TestOpen(t *testing.T) {
	h, _ := setupHistory(t, scenarioFiles()...)

	f, err := h.Open(tracked, model.Numbered(2))
	require.NoError(t, err)
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "line 1\nline 2\n", string(content))

	_, err = h.Open("/work/gone.txt", model.Current)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
