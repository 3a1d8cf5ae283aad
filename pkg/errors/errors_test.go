package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapKeepsKind(t *testing.T) {
	kind := New("not found")
	other := New("not found")

	wrapped := kind.Wrapf("revision %d", 3)
	assert.True(t, Is(wrapped, kind))
	assert.False(t, Is(wrapped, other))
	assert.Equal(t, "not found: revision 3", wrapped.Error())

	// the kind itself is not mutated by Wrap
	assert.Equal(t, "not found", kind.Error())
	assert.Nil(t, kind.Unwrap())
}

func TestWrapStdlib(t *testing.T) {
	kind := New("io failure")
	e := fmt.Errorf("context: %w", kind.Wrap(os.ErrPermission))

	assert.True(t, Is(e, kind))
	assert.True(t, Is(e, os.ErrPermission))

	var target *Error
	require.True(t, As(e, &target))
	assert.True(t, Is(target, kind))
}
