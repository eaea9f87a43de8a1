package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(ctx, "patients")
	assert.Equal(t, ErrNotFound, err)

	value := []byte(`[{"id":"p1","name":"Jane"}]`)
	require.NoError(t, s.Save(ctx, "patients", value))

	got, err := s.Load(ctx, "patients")
	require.NoError(t, err)
	assert.Equal(t, value, got)

	// save(load()) is a fixed point
	require.NoError(t, s.Save(ctx, "patients", got))
	again, err := s.Load(ctx, "patients")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestFileStoreOverwriteKeepsLastValue(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "users", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "users", []byte(`[1,2]`)))

	got, err := s.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)
}

func TestFileStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "user", []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, "user"))
	require.NoError(t, s.Delete(ctx, "user"))

	_, err = s.Load(ctx, "user")
	assert.Equal(t, ErrNotFound, err)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), "appointments", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "appointments.json", filepath.Base(entries[0].Name()))
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	value := []byte(`[1]`)
	require.NoError(t, s.Save(ctx, "patients", value))

	got, err := s.Load(ctx, "patients")
	require.NoError(t, err)

	// mutating the returned slice must not touch the stored copy
	got[0] = 'X'
	fresh, err := s.Load(ctx, "patients")
	require.NoError(t, err)
	assert.Equal(t, value, fresh)
}
