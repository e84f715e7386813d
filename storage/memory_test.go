package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetRoundTrip(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("sync_1_42", []byte("committee-bytes")))

	got, err := m.Get("sync_1_42")
	require.NoError(t, err)
	require.Equal(t, []byte("committee-bytes"), got)
}

func TestMemoryGetMissingKeyReturnsErrNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.Get("states_1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("k", []byte("v")))
	require.NoError(t, m.Delete("k"))

	_, err := m.Get("k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySetCopiesValueBuffer(t *testing.T) {
	m := NewMemory()
	buf := []byte("original")
	require.NoError(t, m.Set("k", buf))
	buf[0] = 'X'

	got, err := m.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("original"), got)
}

func TestMemoryGetReturnsIndependentCopy(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("k", []byte("original")))

	got, err := m.Get("k")
	require.NoError(t, err)
	got[0] = 'X'

	got2, err := m.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("original"), got2)
}
