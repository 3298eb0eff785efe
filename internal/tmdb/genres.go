package tmdb

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lepinkainen/reelbot/internal/media"
)

// MovieGenres fetches the movie genre list as an id to name map.
func (c *Client) MovieGenres(ctx context.Context) (map[int]string, error) {
	return c.Genres(ctx, media.Movie)
}

// Genres fetches /genre/{kind}/list. The result is not cached.
func (c *Client) Genres(ctx context.Context, kind media.Kind) (map[int]string, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/genre/%s/list?%s", c.baseURL, kind, params.Encode())

	var response struct {
		Genres []genre `json:"genres"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("get %s genres: %w", kind, err)
	}

	result := make(map[int]string, len(response.Genres))
	for _, g := range response.Genres {
		result[g.ID] = g.Name
	}

	return result, nil
}
