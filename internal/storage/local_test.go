package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/files/"})
	require.NoError(t, err)

	key := NewKey("attachments/p1", "Brief.PDF")
	assert.True(t, strings.HasPrefix(key, "attachments/p1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	require.NoError(t, s.Save(ctx, key, strings.NewReader("hello"), "application/pdf"))

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello", string(data))

	url, err := s.GetURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/files/"+key, url)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"../escape.txt", "/etc/passwd", "a/../../b", "", `a\b`} {
		err := s.Save(ctx, key, strings.NewReader("x"), "text/plain")
		assert.ErrorIs(t, err, ErrInvalidPath, key)
	}
}

func TestNewStorageUnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
