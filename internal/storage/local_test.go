package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func TestNewLocalStore(t *testing.T) {
	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		s, err := NewLocalStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Root())

		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("existing directory is fine", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewLocalStore(dir)
		require.NoError(t, err)
		_, err = NewLocalStore(dir)
		assert.NoError(t, err)
	})

	t.Run("empty directory rejected", func(t *testing.T) {
		_, err := NewLocalStore("")
		assert.Error(t, err)
	})
}

func TestLocalStore_PutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "uploads/abc.txt", strings.NewReader("hello world"), PutObjectOptions{Size: -1, ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size)
	assert.Equal(t, "uploads/abc.txt", info.Key)

	rc, got, err := s.Get(ctx, "uploads/abc.txt")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))
	assert.Equal(t, int64(11), got.Size)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(s.Root(), "uploads"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStore_PutOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "k.bin", strings.NewReader("first"), PutObjectOptions{Size: -1})
	require.NoError(t, err)
	_, err = s.Put(ctx, "k.bin", strings.NewReader("2nd"), PutObjectOptions{Size: -1})
	require.NoError(t, err)

	rc, _, err := s.Get(ctx, "k.bin")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "2nd", string(b))
}

func TestLocalStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Get(context.Background(), "uploads/missing.pdf")
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestLocalStore_Exists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "uploads/x.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Put(ctx, "uploads/x.txt", strings.NewReader("x"), PutObjectOptions{Size: 1})
	require.NoError(t, err)

	ok, err = s.Exists(ctx, "uploads/x.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	// a directory is not an object
	ok, err = s.Exists(ctx, "uploads")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "uploads/d.txt", strings.NewReader("bye"), PutObjectOptions{Size: 3})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "uploads/d.txt"))
	ok, _ := s.Exists(ctx, "uploads/d.txt")
	assert.False(t, ok)

	// missing object is not an error
	assert.NoError(t, s.Delete(ctx, "uploads/d.txt"))
}

func TestLocalStore_InvalidKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape.txt", "uploads/../../escape.txt", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			_, err := s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: 1})
			assert.ErrorIs(t, err, ErrInvalidKey)

			_, _, err = s.Get(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey)

			assert.ErrorIs(t, s.Delete(ctx, key), ErrInvalidKey)
		})
	}
}

func TestLocalStore_PutCanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "uploads/c.txt", strings.NewReader("x"), PutObjectOptions{Size: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_PresignUnsupported(t *testing.T) {
	s := newTestStore(t)

	_, err := s.PresignGet(context.Background(), "uploads/a.txt", time.Minute)
	assert.ErrorIs(t, err, ErrPresignUnsupported)
}
