package bot

import (
	"context"

	"github.com/lepinkainen/reelbot/internal/detail"
	"github.com/lepinkainen/reelbot/internal/media"
	"github.com/lepinkainen/reelbot/internal/pager"
	"github.com/lepinkainen/reelbot/internal/session"
)

// Update is one inbound event from the messaging transport. Exactly one of
// Command and Callback is set.
type Update struct {
	ID       int
	Command  *Command
	Callback *Callback
}

// Command is a slash command sent as a chat message.
type Command struct {
	ChatID int64
	Name   string
	Args   string
}

// Callback is an inline button press.
type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	Data      string
}

// Messenger sends replies through the messaging transport.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendKeyboard(ctx context.Context, chatID int64, text string, kb pager.Keyboard) error
	EditKeyboard(ctx context.Context, chatID int64, messageID int, text string, kb pager.Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, photoPath, caption string) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// PageSource builds result pages.
type PageSource interface {
	Page(ctx context.Context, q session.Query, number int) (pager.Page, error)
}

// DetailSource delivers entry details.
type DetailSource interface {
	Deliver(ctx context.Context, id int64, kind media.Kind, send detail.SendFunc) error
}
