package tmdb

import (
	"context"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// PosterURL constructs the full poster URL from a poster path.
func (c *Client) PosterURL(posterPath string) (string, error) {
	posterPath = strings.TrimPrefix(strings.TrimSpace(posterPath), "/")
	if posterPath == "" {
		return "", ErrNoPoster
	}
	return c.imageBaseURL + "/" + c.posterSize + "/" + posterPath, nil
}

// DownloadImage downloads and decodes an image, applying EXIF orientation.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) (image.Image, error) {
	resp, err := c.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return imaging.Decode(resp.Body, imaging.AutoOrientation(true))
}
