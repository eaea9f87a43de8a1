package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	b, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("scan bytes")
	digest, err := b.Put(content)
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	got, err := b.Get(digest)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestPutIsDeduplicated(t *testing.T) {
	b, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	d1, err := b.Put([]byte("same"))
	require.NoError(t, err)
	d2, err := b.Put([]byte("same"))
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestGetRejectsBadDigest(t *testing.T) {
	b, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	for _, digest := range []string{"", "short", "../../etc/passwd", "zz" + string(make([]byte, 62))} {
		_, err := b.Get(digest)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}
