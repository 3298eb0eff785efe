package pager

import (
	"fmt"

	"github.com/lepinkainen/reelbot/internal/callback"
)

// Button is one inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Keyboard is a grid of buttons, one slice per row.
type Keyboard [][]Button

// Keyboard renders the page: one full-width selection button per entry and,
// when more results exist, a trailing button for the next page.
func (p Page) Keyboard() Keyboard {
	rows := make(Keyboard, 0, len(p.Items)+1)
	for _, item := range p.Items {
		rows = append(rows, []Button{{
			Text: buttonLabel(item),
			Data: callback.Encode(callback.Select(item.ID, item.Kind)),
		}})
	}
	if p.HasMore {
		next := p.Number + 1
		rows = append(rows, []Button{{
			Text: fmt.Sprintf("Page %d", next),
			Data: callback.Encode(callback.Navigate(next)),
		}})
	}
	return rows
}

func buttonLabel(r Result) string {
	if r.Title == "" {
		return fmt.Sprintf("Untitled %s #%d", r.Kind.Label(), r.ID)
	}
	return r.Title
}
