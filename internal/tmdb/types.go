package tmdb

import (
	"github.com/lepinkainen/reelbot/internal/media"
)

// SearchResult represents a single search result from TMDB.
type SearchResult struct {
	ID           int64      `json:"id"`
	MediaType    media.Kind `json:"media_type"`
	Title        string     `json:"title"`
	Name         string     `json:"name"`
	PosterPath   string     `json:"poster_path"`
	Overview     string     `json:"overview"`
	ReleaseDate  string     `json:"release_date"`
	FirstAirDate string     `json:"first_air_date"`
	VoteAverage  float64    `json:"vote_average"`
	GenreIDs     []int      `json:"genre_ids"`
}

// DisplayTitle returns the appropriate title for the search result.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Date returns the release date for movies or the first air date for TV shows.
func (r SearchResult) Date() string {
	if r.MediaType == media.TV {
		return r.FirstAirDate
	}
	return r.ReleaseDate
}

// Year extracts the year from the release or air date.
func (r SearchResult) Year() string {
	source := r.Date()
	if source == "" {
		return "Unknown"
	}
	if len(source) >= 4 {
		return source[:4]
	}
	return source
}

// SearchPage is one page of a TMDB search response.
type SearchPage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []SearchResult `json:"results"`
}

// Details holds the fields of a movie or TV show detail response the bot renders.
type Details struct {
	ID          int64
	Kind        media.Kind
	Title       string
	Overview    string
	PosterPath  string
	Rating      float64
	ReleaseDate string
	GenreIDs    []int
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type detailsResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []genre `json:"genres"`
	GenreIDs     []int   `json:"genre_ids"`
}

func (r detailsResponse) toDetails(kind media.Kind) *Details {
	d := &Details{
		ID:          r.ID,
		Kind:        kind,
		Title:       r.Title,
		Overview:    r.Overview,
		PosterPath:  r.PosterPath,
		Rating:      r.VoteAverage,
		ReleaseDate: r.ReleaseDate,
	}
	if d.Title == "" {
		d.Title = r.Name
	}
	if d.ReleaseDate == "" {
		d.ReleaseDate = r.FirstAirDate
	}

	// Detail responses carry genre objects; list responses carry bare ids.
	seen := make(map[int]bool, len(r.Genres)+len(r.GenreIDs))
	for _, g := range r.Genres {
		if !seen[g.ID] {
			seen[g.ID] = true
			d.GenreIDs = append(d.GenreIDs, g.ID)
		}
	}
	for _, id := range r.GenreIDs {
		if !seen[id] {
			seen[id] = true
			d.GenreIDs = append(d.GenreIDs, id)
		}
	}
	return d
}
