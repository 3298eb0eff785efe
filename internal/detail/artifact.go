package detail

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"

	"github.com/lepinkainen/reelbot/internal/errors"
)

// Artifact is a poster written to a uniquely named temporary file.
type Artifact struct {
	Path string
}

// Release removes the file. Releasing twice is not an error.
func (a Artifact) Release() error {
	if a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !stdErrors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Composer) materialize(ctx context.Context, posterPath string) (Artifact, error) {
	imageURL, err := c.catalog.PosterURL(posterPath)
	if err != nil {
		return Artifact{}, errors.NewImageFetchError("", err)
	}

	img, err := c.catalog.DownloadImage(ctx, imageURL)
	if err != nil {
		return Artifact{}, errors.NewImageFetchError(imageURL, err)
	}

	if img.Bounds().Dx() > c.maxWidth {
		img = imaging.Resize(img, c.maxWidth, 0, imaging.Lanczos)
	}

	f, err := os.CreateTemp(c.tempDir, "poster-*.jpg")
	if err != nil {
		return Artifact{}, fmt.Errorf("create poster file: %w", err)
	}
	art := Artifact{Path: f.Name()}

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		_ = f.Close()
		_ = art.Release()
		return Artifact{}, fmt.Errorf("write poster file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = art.Release()
		return Artifact{}, fmt.Errorf("close poster file: %w", err)
	}

	return art, nil
}
