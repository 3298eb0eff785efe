// Package detail composes the detail view of a single catalog entry: caption
// text plus a poster image that only lives for the duration of one send.
package detail

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/lepinkainen/reelbot/internal/media"
	"github.com/lepinkainen/reelbot/internal/tmdb"
)

const defaultMaxWidth = 780

// Catalog is the subset of the TMDB client the composer uses.
type Catalog interface {
	GetDetails(ctx context.Context, id int64, kind media.Kind) (*tmdb.Details, error)
	MovieGenres(ctx context.Context) (map[int]string, error)
	PosterURL(posterPath string) (string, error)
	DownloadImage(ctx context.Context, imageURL string) (image.Image, error)
}

// Entry is the text part of a detail view.
type Entry struct {
	Details tmdb.Details
	Genres  []string
	Caption string
}

// Rendered is handed to the send callback of Deliver. Photo is only valid
// until the callback returns.
type Rendered struct {
	Entry
	Photo Artifact
}

// SendFunc delivers a rendered entry to the user.
type SendFunc func(ctx context.Context, r Rendered) error

// Composer builds detail views.
type Composer struct {
	catalog  Catalog
	tempDir  string
	maxWidth int
}

// Option configures a Composer.
type Option func(*Composer)

// WithTempDir sets the directory poster files are written to. Empty means os.TempDir().
func WithTempDir(dir string) Option {
	return func(c *Composer) {
		c.tempDir = dir
	}
}

// WithMaxWidth bounds the poster width in pixels.
func WithMaxWidth(width int) Option {
	return func(c *Composer) {
		if width > 0 {
			c.maxWidth = width
		}
	}
}

// New creates a Composer.
func New(catalog Catalog, opts ...Option) *Composer {
	c := &Composer{
		catalog:  catalog,
		maxWidth: defaultMaxWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose fetches the entry details and the movie genre list and formats the
// caption. Genre ids missing from the list are dropped.
func (c *Composer) Compose(ctx context.Context, id int64, kind media.Kind) (Entry, error) {
	details, err := c.catalog.GetDetails(ctx, id, kind)
	if err != nil {
		return Entry{}, err
	}

	// The movie list is used for both kinds; TV-only genres resolve to nothing.
	genreCatalog, err := c.catalog.MovieGenres(ctx)
	if err != nil {
		return Entry{}, err
	}

	genres := ResolveGenres(details.GenreIDs, genreCatalog)
	return Entry{
		Details: *details,
		Genres:  genres,
		Caption: FormatCaption(*details, genres),
	}, nil
}

// Deliver composes the entry, downloads its poster into a temporary file and
// calls send with both. The file is removed before Deliver returns, whatever
// the outcome. Poster failures are reported as *errors.ImageFetchError and
// send is not called.
func (c *Composer) Deliver(ctx context.Context, id int64, kind media.Kind, send SendFunc) error {
	entry, err := c.Compose(ctx, id, kind)
	if err != nil {
		return err
	}

	photo, err := c.materialize(ctx, entry.Details.PosterPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := photo.Release(); err != nil {
			slog.Warn("Failed to remove poster file", "path", photo.Path, "error", err)
		}
	}()

	if err := send(ctx, Rendered{Entry: entry, Photo: photo}); err != nil {
		return fmt.Errorf("send %s %d: %w", kind, id, err)
	}
	return nil
}

// ResolveGenres maps ids to names in id order, skipping unknown ids.
func ResolveGenres(ids []int, catalog map[int]string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := catalog[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
