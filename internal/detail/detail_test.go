package detail

import (
	"context"
	stdErrors "errors"
	"image"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/media"
	"github.com/lepinkainen/reelbot/internal/tmdb"
)

type fakeCatalog struct {
	details    map[int64]*tmdb.Details
	genres     map[int]string
	genreErr   error
	imageErr   error
	imageWidth int
	downloads  int
	genreCalls int
	mu         sync.Mutex
}

func (f *fakeCatalog) GetDetails(_ context.Context, id int64, kind media.Kind) (*tmdb.Details, error) {
	d, ok := f.details[id]
	if !ok || d.Kind != kind {
		return nil, errors.NewNotFoundError(string(kind), id)
	}
	out := *d
	return &out, nil
}

func (f *fakeCatalog) MovieGenres(context.Context) (map[int]string, error) {
	f.mu.Lock()
	f.genreCalls++
	f.mu.Unlock()
	if f.genreErr != nil {
		return nil, f.genreErr
	}
	return f.genres, nil
}

func (f *fakeCatalog) PosterURL(posterPath string) (string, error) {
	c := tmdb.NewClient("key", tmdb.WithImageBaseURL("https://images.example"))
	return c.PosterURL(posterPath)
}

func (f *fakeCatalog) DownloadImage(context.Context, string) (image.Image, error) {
	f.mu.Lock()
	f.downloads++
	f.mu.Unlock()
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	width := f.imageWidth
	if width == 0 {
		width = 20
	}
	return image.NewRGBA(image.Rect(0, 0, width, width*3/2)), nil
}

func inceptionCatalog() *fakeCatalog {
	return &fakeCatalog{
		details: map[int64]*tmdb.Details{
			27205: {
				ID:          27205,
				Kind:        media.Movie,
				Title:       "Inception",
				Overview:    "Cobb steals secrets from dreams.",
				PosterPath:  "/inception.jpg",
				Rating:      8.369,
				ReleaseDate: "2010-07-15",
				GenreIDs:    []int{28, 878, 12345},
			},
			1396: {
				ID:         1396,
				Kind:       media.TV,
				Title:      "Breaking Bad",
				PosterPath: "",
				GenreIDs:   []int{18},
			},
		},
		genres: map[int]string{28: "Action", 878: "Science Fiction", 18: "Drama"},
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDeliverSendsCaptionAndPoster(t *testing.T) {
	dir := t.TempDir()
	catalog := inceptionCatalog()
	composer := New(catalog, WithTempDir(dir))

	sends := 0
	var photoPath string
	err := composer.Deliver(context.Background(), 27205, media.Movie, func(_ context.Context, r Rendered) error {
		sends++
		photoPath = r.Photo.Path

		info, statErr := os.Stat(r.Photo.Path)
		require.NoError(t, statErr, "poster must exist while sending")
		assert.Positive(t, info.Size())

		assert.Contains(t, r.Caption, "Inception")
		assert.Contains(t, r.Caption, "Cobb steals secrets from dreams.")
		assert.Contains(t, r.Caption, "Action, Science Fiction")
		assert.Contains(t, r.Caption, "8.4/10")
		assert.Contains(t, r.Caption, "2010-07-15")
		assert.Equal(t, []string{"Action", "Science Fiction"}, r.Genres)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sends)
	assert.True(t, strings.HasPrefix(photoPath, dir))
	_, statErr := os.Stat(photoPath)
	assert.True(t, os.IsNotExist(statErr), "poster must be removed after delivery")
	assert.Empty(t, listDir(t, dir))
}

func TestDeliverRemovesPosterWhenSendFails(t *testing.T) {
	dir := t.TempDir()
	composer := New(inceptionCatalog(), WithTempDir(dir))

	sendErr := stdErrors.New("telegram unavailable")
	err := composer.Deliver(context.Background(), 27205, media.Movie, func(context.Context, Rendered) error {
		return sendErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.Empty(t, listDir(t, dir))
}

func TestDeliverImageFetchFailureSkipsSend(t *testing.T) {
	dir := t.TempDir()
	catalog := inceptionCatalog()
	catalog.imageErr = stdErrors.New("connection refused")
	composer := New(catalog, WithTempDir(dir))

	called := false
	err := composer.Deliver(context.Background(), 27205, media.Movie, func(context.Context, Rendered) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsImageFetchError(err))
	assert.False(t, called)
	assert.Empty(t, listDir(t, dir))
}

func TestDeliverMissingPosterIsImageFetchError(t *testing.T) {
	catalog := inceptionCatalog()
	composer := New(catalog, WithTempDir(t.TempDir()))

	err := composer.Deliver(context.Background(), 1396, media.TV, func(context.Context, Rendered) error {
		t.Fatal("send must not be called without a poster")
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsImageFetchError(err))
	assert.ErrorIs(t, err, tmdb.ErrNoPoster)
	assert.Equal(t, 0, catalog.downloads)
}

func TestDeliverNotFound(t *testing.T) {
	catalog := inceptionCatalog()
	composer := New(catalog, WithTempDir(t.TempDir()))

	err := composer.Deliver(context.Background(), 27205, media.TV, func(context.Context, Rendered) error {
		t.Fatal("send must not be called")
		return nil
	})
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 0, catalog.genreCalls)
}

func TestDeliverGenreFailureFailsRequest(t *testing.T) {
	catalog := inceptionCatalog()
	catalog.genreErr = stdErrors.New("tmdb down")
	composer := New(catalog, WithTempDir(t.TempDir()))

	err := composer.Deliver(context.Background(), 27205, media.Movie, func(context.Context, Rendered) error {
		t.Fatal("send must not be called")
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 0, catalog.downloads)
}

func TestDeliverConcurrentSameEntryUsesDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	composer := New(inceptionCatalog(), WithTempDir(dir))

	var (
		mu    sync.Mutex
		paths = map[string]bool{}
		wg    sync.WaitGroup
		ready = make(chan struct{})
	)
	const n = 5
	var arrived sync.WaitGroup
	arrived.Add(n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := composer.Deliver(context.Background(), 27205, media.Movie, func(_ context.Context, r Rendered) error {
				mu.Lock()
				paths[r.Photo.Path] = true
				mu.Unlock()
				arrived.Done()
				<-ready
				return nil
			})
			assert.NoError(t, err)
		}()
	}

	arrived.Wait()
	close(ready)
	wg.Wait()

	assert.Len(t, paths, n)
	assert.Empty(t, listDir(t, dir))
}

func TestDeliverResizesWidePosters(t *testing.T) {
	catalog := inceptionCatalog()
	catalog.imageWidth = 1200
	composer := New(catalog, WithTempDir(t.TempDir()), WithMaxWidth(300))

	err := composer.Deliver(context.Background(), 27205, media.Movie, func(_ context.Context, r Rendered) error {
		f, err := os.Open(r.Photo.Path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		cfg, format, err := image.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 300, cfg.Width)
		return nil
	})
	require.NoError(t, err)
}

func TestResolveGenresDropsUnknownIDs(t *testing.T) {
	catalog := map[int]string{28: "Action", 35: "Comedy"}

	assert.Equal(t, []string{"Comedy", "Action"}, ResolveGenres([]int{35, 999, 28}, catalog))
	assert.Empty(t, ResolveGenres([]int{1, 2}, catalog))
	assert.Empty(t, ResolveGenres(nil, catalog))
}

func TestArtifactReleaseIsIdempotent(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "poster-*.jpg")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	art := Artifact{Path: f.Name()}
	require.NoError(t, art.Release())
	require.NoError(t, art.Release())
	require.NoError(t, Artifact{}.Release())
}
