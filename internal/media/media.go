// Package media defines the kinds of catalog entries the bot can search for.
package media

import "fmt"

// Kind discriminates between movies and TV shows. The string values match
// TMDB's media_type and path segments.
type Kind string

const (
	Movie Kind = "movie"
	TV    Kind = "tv"
)

// All lists every supported kind in merge order: movies before shows.
var All = []Kind{Movie, TV}

// ParseKind validates a raw media type string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Movie, TV:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unsupported media type %q", s)
	}
}

// Label returns the human readable name used in replies.
func (k Kind) Label() string {
	switch k {
	case Movie:
		return "movie"
	case TV:
		return "TV show"
	default:
		return string(k)
	}
}

func (k Kind) String() string {
	return string(k)
}
