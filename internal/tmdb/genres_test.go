package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieGenresFetchesEveryCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		response := map[string]any{
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 18, "name": "Drama"}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	genres, err := client.MovieGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]string{28: "Action", 18: "Drama"}, genres)

	_, err = client.MovieGenres(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGenresError(t *testing.T) {
	client := NewClient("key", WithHTTPClient(&failingDoer{}))

	_, err := client.MovieGenres(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get movie genres")
}
