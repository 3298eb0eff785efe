package tmdb

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/url"

	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/media"
)

// GetMovieDetails fetches detailed information for a movie by ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	return c.GetDetails(ctx, movieID, media.Movie)
}

// GetTVDetails fetches detailed information for a TV show by ID.
func (c *Client) GetTVDetails(ctx context.Context, tvID int64) (*Details, error) {
	return c.GetDetails(ctx, tvID, media.TV)
}

// GetDetails fetches /{kind}/{id}. A 404 from TMDB becomes *errors.NotFoundError.
func (c *Client) GetDetails(ctx context.Context, mediaID int64, kind media.Kind) (*Details, error) {
	if _, err := media.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/%s/%d?%s", c.baseURL, kind, mediaID, params.Encode())

	var response detailsResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		if stdErrors.Is(err, ErrNotFound) {
			return nil, errors.NewNotFoundError(string(kind), mediaID)
		}
		return nil, fmt.Errorf("get %s %d: %w", kind, mediaID, err)
	}
	if response.ID == 0 {
		return nil, errors.NewNotFoundError(string(kind), mediaID)
	}

	return response.toDetails(kind), nil
}
