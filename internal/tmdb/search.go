package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lepinkainen/reelbot/internal/media"
)

// SearchMovies performs a movie-specific search on TMDB and returns the requested page.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchPage, error) {
	return c.Search(ctx, media.Movie, query, page)
}

// SearchTV performs a TV-specific search on TMDB and returns the requested page.
func (c *Client) SearchTV(ctx context.Context, query string, page int) (*SearchPage, error) {
	return c.Search(ctx, media.TV, query, page)
}

// Search queries /search/{kind}. Results are returned unfiltered and in API order,
// each tagged with kind.
func (c *Client) Search(ctx context.Context, kind media.Kind, query string, page int) (*SearchPage, error) {
	if _, err := media.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	endpoint := fmt.Sprintf("%s/search/%s?%s", c.baseURL, kind, params.Encode())

	var response SearchPage
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("search %s %q page %d: %w", kind, query, page, err)
	}

	for i := range response.Results {
		response.Results[i].MediaType = kind
	}

	return &response, nil
}
