package store

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// storeContract runs the behavior every Store implementation must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()

	// Empty store.
	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	keys, err := s.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)

	// Set and read back.
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	v, ok, err := s.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", v)

	// Upsert overwrites.
	require.NoError(t, s.Set("a", "3"))
	v, _, err = s.Get("a")
	require.NoError(t, err)
	require.Equal(t, "3", v)

	keys, err = s.Keys()
	require.NoError(t, err)
	sort.Strings(keys)
	require.Equal(t, []string{"a", "b"}, keys)

	// Delete, including an absent key.
	require.NoError(t, s.Delete("a"))
	_, ok, err = s.Get("a")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Delete("never-existed"))

	keys, err = s.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, keys)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	storeContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(filepath.Join(t.TempDir(), "store", "games.json"))
	require.NoError(t, err)
	storeContract(t, s)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "games.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestFileStoreMissingFileReadsEmpty(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	keys, err := s.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = s.Get("k")
	require.Error(t, err)
}
