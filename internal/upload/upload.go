// Package upload stores product images. Uploads have no consistency
// relationship to the order transaction; a failed upload never touches
// catalog or order state.
package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// File is one image to store.
type File struct {
	Name    string
	Content []byte
}

// Uploader stores a batch of files and returns their public URLs, in input
// order.
type Uploader interface {
	Upload(ctx context.Context, files []File) ([]string, error)
}

// LocalUploader writes files to a directory served as static assets. Files of
// one request are written with bounded parallelism.
type LocalUploader struct {
	dir      string
	baseURL  string
	parallel int
}

// NewLocalUploader creates a LocalUploader. parallel caps concurrent writes
// per request; values below 1 disable the cap.
func NewLocalUploader(dir, baseURL string, parallel int) *LocalUploader {
	return &LocalUploader{
		dir:      dir,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		parallel: parallel,
	}
}

// Upload writes every file under a generated unique name and returns the URLs.
// On any failure the whole batch fails; already-written files are left for
// the storage layer's garbage collection (they are unreferenced).
func (u *LocalUploader) Upload(ctx context.Context, files []File) ([]string, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}

	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if u.parallel > 0 {
		g.SetLimit(u.parallel)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := uuid.New().String() + strings.ToLower(filepath.Ext(f.Name))
			if err := os.WriteFile(filepath.Join(u.dir, name), f.Content, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", f.Name)
			}
			urls[i] = u.baseURL + "/" + name
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
