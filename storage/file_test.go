package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileGetSetRoundTrip(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	require.NoError(t, f.Set("states_0", []byte("hello")))
	v, err := f.Get("states_0")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), v)
}

func TestFileGetMissingKeyReturnsErrNotFound(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, err = f.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileDeleteIsIdempotent(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, f.Set("k", []byte("v")))
	require.NoError(t, f.Delete("k"))
	require.NoError(t, f.Delete("k"))

	_, err = f.Get("k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileKeyIsBasenamedAgainstTraversal(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set("../escape", []byte("x")))
	v, err := f.Get("escape")
	require.NoError(t, err)
	require.Equal(t, []byte("x"), v)
}
