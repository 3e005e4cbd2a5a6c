//go:build unix

package bytestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buddyarena/allocator"
	"buddyarena/allocator/buddy"
)

func TestOpenSizesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.dat")

	bs, err := Open(path, allocator.Config{UniverseSize: 4096, MinBlockSize: 64})
	require.NoError(t, err)
	defer bs.Close()

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), st.Size())
}

func TestOpenRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.dat")

	_, err := Open(path, allocator.Config{UniverseSize: 1000})
	require.ErrorIs(t, err, allocator.ErrUniverseNotPow2)

	// The config gate runs before any file is touched.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMappedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.dat")

	bs, err := Open(path, allocator.Config{UniverseSize: 4096, MinBlockSize: 8})
	require.NoError(t, err)
	defer bs.Close()

	h, ok := bs.Alloc(len("persisted"))
	require.True(t, ok)
	copy(bs.View(h), "persisted")
	require.NoError(t, bs.Sync())

	// A shared mapping is visible through the file itself.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	r := h.Range()
	assert.Equal(t, "persisted", string(raw[r.Start:r.End]))
}

func TestReclamation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.dat")

	bs, err := Open(path, allocator.Config{UniverseSize: 1024, MinBlockSize: 8, MaxBlockSize: 256})
	require.NoError(t, err)
	defer bs.Close()

	var handles []*allocator.Handle
	for i := 0; i < 4; i++ {
		h, ok := bs.Alloc(200)
		require.True(t, ok)
		handles = append(handles, h)
	}
	_, ok := bs.Alloc(200)
	assert.False(t, ok, "universe should be exhausted")

	for _, h := range handles {
		h.Release()
	}
	bs.Tidy()

	root := bs.Snapshot()
	assert.Equal(t, buddy.Available, root.State)
	assert.Equal(t, 1024, root.Range.Len())
}

func TestCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.dat")

	bs, err := Open(path, allocator.Config{UniverseSize: 512})
	require.NoError(t, err)

	require.NoError(t, bs.Close())
	require.NoError(t, bs.Close())
}
