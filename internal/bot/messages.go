package bot

import (
	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/media"
)

const (
	msgWelcome = "Welcome to the movie and TV show search bot!\n\n" +
		"/searchmovie <title> searches movies\n" +
		"/searchtv <title> searches TV shows\n" +
		"/search <title> searches both"
	msgGenericError  = "An error occurred while processing your request. Please try again later."
	msgNotFound      = "Entry details not found."
	msgImageError    = "Error occurred while fetching the image."
	msgNoSession     = "Search query not found."
	msgNoMoreResults = "No more results."
	msgSelectEntry   = "Please select an entry:"
)

type searchCommand struct {
	kinds   []media.Kind
	prompt  string
	empty   string
	missing string
}

var searchCommands = map[string]searchCommand{
	"searchmovie": {
		kinds:   []media.Kind{media.Movie},
		prompt:  "Please select a movie:",
		empty:   "No movie results found.",
		missing: "Please provide a movie search query.",
	},
	"searchtv": {
		kinds:   []media.Kind{media.TV},
		prompt:  "Please select a TV show:",
		empty:   "No TV show results found.",
		missing: "Please provide a TV show search query.",
	},
	"search": {
		kinds:   media.All,
		prompt:  msgSelectEntry,
		empty:   "No results found.",
		missing: "Please provide a search query.",
	},
}

// userMessage maps a failure to the text shown to the user and a metric label.
func userMessage(err error) (text, kind string) {
	switch {
	case errors.IsDecodeError(err):
		return msgGenericError, "decode"
	case errors.IsNotFoundError(err):
		return msgNotFound, "not_found"
	case errors.IsImageFetchError(err):
		return msgImageError, "image_fetch"
	case errors.IsNoActiveSessionError(err):
		return msgNoSession, "no_session"
	case errors.IsRateLimitError(err):
		return msgGenericError, "rate_limited"
	default:
		return msgGenericError, "network"
	}
}
