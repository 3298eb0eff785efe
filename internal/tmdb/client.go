// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultPosterSize   = "w780"
)

var (
	// ErrNoPoster is returned when no poster is available for the media.
	ErrNoPoster = errors.New("poster not available")
	// ErrNotFound is returned when TMDB answers 404 for a resource.
	ErrNotFound = errors.New("tmdb: resource not found")
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client. Every call is a single attempt; failures are
// returned to the caller as-is.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	posterSize   string
	httpClient   HTTPDoer
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		posterSize:   defaultPosterSize,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithPosterSize sets the TMDB image size segment used for posters (e.g. "w500").
func WithPosterSize(size string) Option {
	return func(client *Client) {
		if size != "" {
			client.posterSize = strings.Trim(size, "/")
		}
	}
}
