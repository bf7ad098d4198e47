package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestUploader(t *testing.T, max int64) (*Uploader, *LocalStorage) {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return NewUploader(store, max, nil), store
}

func TestUploader_Save(t *testing.T) {
	u, store := newTestUploader(t, 1<<20)
	ctx := context.Background()

	key, err := u.Save(ctx, FolderProducts, bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "uploads/products/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	onDisk := filepath.Join(store.Root(), "products", filepath.Base(key))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	assert.Equal(t, "/uploads/products/"+filepath.Base(key), u.URL(ctx, key))

	require.NoError(t, u.Remove(ctx, key))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, u.Remove(ctx, key), "deleting twice is fine")
}

func TestUploader_Rejects(t *testing.T) {
	ctx := context.Background()

	t.Run("text file", func(t *testing.T) {
		u, _ := newTestUploader(t, 1<<20)
		body := []byte("just some text")
		_, err := u.Save(ctx, FolderProducts, bytes.NewReader(body), int64(len(body)))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("pdf is only for bills", func(t *testing.T) {
		u, _ := newTestUploader(t, 1<<20)
		body := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
		_, err := u.Save(ctx, FolderProducts, bytes.NewReader(body), int64(len(body)))
		assert.ErrorIs(t, err, ErrUnsupportedType)

		key, err := u.Save(ctx, FolderBills, bytes.NewReader(body), int64(len(body)))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".pdf"))
	})

	t.Run("too large", func(t *testing.T) {
		u, _ := newTestUploader(t, 10)
		_, err := u.Save(ctx, FolderProducts, bytes.NewReader(pngHeader), int64(len(pngHeader)))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("empty", func(t *testing.T) {
		u, _ := newTestUploader(t, 10)
		_, err := u.Save(ctx, FolderBills, bytes.NewReader(nil), 0)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../x.png", "uploads/../x.png", "other/x.png", "uploads//x.png"} {
		assert.Error(t, store.Put(ctx, key, bytes.NewReader(pngHeader), 1, "image/png"), key)
	}
}
