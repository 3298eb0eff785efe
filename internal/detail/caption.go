package detail

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/lepinkainen/reelbot/internal/tmdb"
)

// MaxCaptionLength is Telegram's limit for photo captions.
const MaxCaptionLength = 1024

// FormatCaption renders the HTML caption sent with the poster. The overview
// is shortened when the caption would exceed MaxCaptionLength.
func FormatCaption(d tmdb.Details, genres []string) string {
	overview := []rune(strings.TrimSpace(d.Overview))
	caption := buildCaption(d, genres, string(overview))

	for utf8.RuneCountInString(caption) > MaxCaptionLength && len(overview) > 0 {
		excess := utf8.RuneCountInString(caption) - MaxCaptionLength
		keep := len(overview) - excess - 1
		if keep < 0 {
			keep = 0
		}
		overview = overview[:keep]
		caption = buildCaption(d, genres, strings.TrimSpace(string(overview))+"…")
	}
	return caption
}

func buildCaption(d tmdb.Details, genres []string, overview string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<i><b>🏷️Title: %s</b></i>\n", html.EscapeString(d.Title))
	fmt.Fprintf(&sb, "<i><b>📝Overview:</b>\n%s</i>\n", html.EscapeString(overview))
	fmt.Fprintf(&sb, "<i><b>🎬Genre: %s</b></i>\n", html.EscapeString(strings.Join(genres, ", ")))
	fmt.Fprintf(&sb, "<i><b>⭐️Rating: %s</b></i>\n", formatRating(d.Rating))
	fmt.Fprintf(&sb, "<i><b>📅Release Date: %s</b></i>", html.EscapeString(orUnknown(d.ReleaseDate)))
	return sb.String()
}

func formatRating(rating float64) string {
	if rating <= 0 {
		return "Not rated"
	}
	return fmt.Sprintf("%.1f/10", rating)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
