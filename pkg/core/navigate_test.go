package core

import (
	"fmt"
	"testing"

	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigateScenario(t *testing.T) {
	h, _ := setupHistory(t, scenarioFiles()...)

	for _, fixture := range []struct {
		from     model.Tag
		previous model.Tag
		hasPrev  bool
		next     model.Tag
		hasNext  bool
	}{
		{from: model.Current, previous: model.Previous, hasPrev: true},
		{from: model.Previous, previous: model.Numbered(2), hasPrev: true, next: model.Current, hasNext: true},
		{from: model.Numbered(2), previous: model.Numbered(1), hasPrev: true, next: model.Previous, hasNext: true},
		{from: model.Numbered(1), next: model.Numbered(2), hasNext: true},
		{from: model.Numbered(7)},
	} {
		prev, ok, err := h.Previous(tracked, fixture.from)
		require.NoError(t, err)
		assert.Equal(t, fixture.hasPrev, ok, "previous of %s", fixture.from)
		if ok {
			assert.Equal(t, fixture.previous, prev, "previous of %s", fixture.from)
		}

		next, ok, err := h.Next(tracked, fixture.from)
		require.NoError(t, err)
		assert.Equal(t, fixture.hasNext, ok, "next of %s", fixture.from)
		if ok {
			assert.Equal(t, fixture.next, next, "next of %s", fixture.from)
		}
	}
}

func TestNavigateNoHistory(t *testing.T) {
	h, _ := setupHistory(t, fileFixture{path: tracked})

	_, ok, err := h.Previous(tracked, model.Current)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = h.Next(tracked, model.Current)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNavigateMonotonicity(t *testing.T) {
	for n := 2; n <= 6; n++ {
		files := []fileFixture{{path: tracked, minutes: 100}}
		for i := 1; i <= n; i++ {
			// numbers deliberately out of chronological order
			files = append(files, fileFixture{path: fmt.Sprintf("/work/notes.txt.~%d~", (i*7)%11+1), minutes: i})
		}
		h, _ := setupHistory(t, files...)

		backups, err := h.ListTaggedBackups(tracked)
		require.NoError(t, err)
		require.Len(t, backups, n)

		// walking back from the current revision visits every backup once, from newest to oldest
		var visited []model.Tag
		tag := model.Current
		for {
			prev, ok, err := h.Previous(tracked, tag)
			require.NoError(t, err)
			if !ok {
				break
			}
			assert.NotContains(t, visited, prev)
			visited = append(visited, prev)
			tag = prev
		}
		assert.Equal(t, backups.Tags(), visited)

		// and walking forward from the oldest one leads back to the current revision
		steps := 0
		for !tag.IsCurrent() {
			next, ok, err := h.Next(tracked, tag)
			require.NoError(t, err)
			require.True(t, ok)
			if !next.IsCurrent() {
				assert.Equal(t, visited[len(visited)-2-steps], next)
			}
			tag = next
			steps++
		}
		assert.Equal(t, n, steps)
	}
}
