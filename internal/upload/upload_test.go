package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_WritesFilesAndReturnsURLs(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/uploads/", 2)

	urls, err := u.Upload(context.Background(), []File{
		{Name: "candle.JPG", Content: []byte("one")},
		{Name: "bundle.png", Content: []byte("two")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)

	// URLs keep input order and carry the lowered original extension.
	assert.True(t, strings.HasPrefix(urls[0], "/uploads/"))
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[1], ".png"))

	for i, url := range urls {
		name := strings.TrimPrefix(url, "/uploads/")
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}[i], string(content))
	}
}

func TestUpload_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/uploads", 0)

	urls, err := u.Upload(context.Background(), []File{
		{Name: "same.jpg", Content: []byte("a")},
		{Name: "same.jpg", Content: []byte("b")},
	})
	require.NoError(t, err)
	assert.NotEqual(t, urls[0], urls[1])
}

func TestUpload_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/uploads", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := u.Upload(ctx, []File{{Name: "candle.jpg", Content: []byte("x")}})
	assert.Error(t, err)
}
