// Package bot routes chat commands and inline button presses to the search,
// pagination and detail pipelines.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/lepinkainen/reelbot/internal/callback"
	"github.com/lepinkainen/reelbot/internal/detail"
	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/metrics"
	"github.com/lepinkainen/reelbot/internal/session"
)

// Dispatcher handles updates. It holds no per-conversation state of its own;
// remembered searches live in the session store.
type Dispatcher struct {
	messenger Messenger
	sessions  session.Store
	pages     PageSource
	details   DetailSource
	opts      options
}

// New creates a Dispatcher.
func New(messenger Messenger, sessions session.Store, pages PageSource, details DetailSource, opts ...Option) *Dispatcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{
		messenger: messenger,
		sessions:  sessions,
		pages:     pages,
		details:   details,
		opts:      o,
	}
}

// HandleCommand answers a slash command. Unknown commands are ignored.
func (d *Dispatcher) HandleCommand(ctx context.Context, cmd Command) error {
	name := strings.ToLower(cmd.Name)
	switch name {
	case "start", "help":
		return d.messenger.SendText(ctx, cmd.ChatID, msgWelcome)
	}

	search, ok := searchCommands[name]
	if !ok {
		logger(ctx).Debug("Ignoring unknown command", "command", cmd.Name)
		return nil
	}

	text := strings.TrimSpace(cmd.Args)
	if text == "" {
		return d.messenger.SendText(ctx, cmd.ChatID, search.missing)
	}

	q := session.NewQuery(text, search.kinds...)
	if err := d.sessions.Set(ctx, cmd.ChatID, q); err != nil {
		return d.fail(ctx, cmd.ChatID, fmt.Errorf("remember search: %w", err))
	}

	page, err := d.pages.Page(ctx, q, 1)
	if err != nil {
		return d.fail(ctx, cmd.ChatID, err)
	}
	if page.Empty() {
		return d.messenger.SendText(ctx, cmd.ChatID, search.empty)
	}

	logger(ctx).Info("Search results sent", "query", q.Text, "items", len(page.Items), "has_more", page.HasMore)
	return d.messenger.SendKeyboard(ctx, cmd.ChatID, search.prompt, page.Keyboard())
}

// HandleCallback decodes an inline button press and either delivers the
// selected entry or replaces the keyboard with another results page.
func (d *Dispatcher) HandleCallback(ctx context.Context, cb Callback) error {
	token, err := callback.Decode(cb.Data)
	if err != nil {
		return d.answerError(ctx, cb, err)
	}

	switch t := token.(type) {
	case callback.Selection:
		return d.showDetail(ctx, cb, t)
	case callback.Navigation:
		return d.showPage(ctx, cb, t)
	default:
		return d.answerError(ctx, cb, errors.NewDecodeError(cb.Data, fmt.Sprintf("unhandled token %T", token)))
	}
}

func (d *Dispatcher) showDetail(ctx context.Context, cb Callback, sel callback.Selection) error {
	err := d.details.Deliver(ctx, sel.EntryID, sel.Kind, func(ctx context.Context, r detail.Rendered) error {
		return d.messenger.SendPhoto(ctx, cb.ChatID, r.Photo.Path, r.Caption)
	})
	if err != nil {
		return d.answerError(ctx, cb, err)
	}

	logger(ctx).Info("Entry details sent", "entry_id", sel.EntryID, "kind", sel.Kind)
	return d.messenger.AnswerCallback(ctx, cb.ID, "")
}

func (d *Dispatcher) showPage(ctx context.Context, cb Callback, nav callback.Navigation) error {
	q, err := d.sessions.Get(ctx, cb.ChatID)
	if err != nil {
		return d.answerError(ctx, cb, err)
	}

	page, err := d.pages.Page(ctx, q, nav.Page)
	if err != nil {
		return d.answerError(ctx, cb, err)
	}
	if page.Empty() {
		return d.messenger.AnswerCallback(ctx, cb.ID, msgNoMoreResults)
	}

	if err := d.messenger.EditKeyboard(ctx, cb.ChatID, cb.MessageID, msgSelectEntry, page.Keyboard()); err != nil {
		return d.answerError(ctx, cb, fmt.Errorf("edit results message: %w", err))
	}

	logger(ctx).Info("Results page sent", "query", q.Text, "page", page.Number, "items", len(page.Items))
	return d.messenger.AnswerCallback(ctx, cb.ID, "")
}

// answerError reports err to the user as a callback answer and returns it.
func (d *Dispatcher) answerError(ctx context.Context, cb Callback, err error) error {
	text, kind := userMessage(err)
	metrics.UserErrorsTotal.WithLabelValues(kind).Inc()
	logger(ctx).Warn("Callback failed", "data", cb.Data, "kind", kind, "error", err)

	if answerErr := d.messenger.AnswerCallback(ctx, cb.ID, text); answerErr != nil {
		logger(ctx).Error("Failed to answer callback", "error", answerErr)
	}
	return err
}

// fail reports err to the chat as a plain message and returns it.
func (d *Dispatcher) fail(ctx context.Context, chatID int64, err error) error {
	text, kind := userMessage(err)
	metrics.UserErrorsTotal.WithLabelValues(kind).Inc()
	logger(ctx).Error("Command failed", "kind", kind, "error", err)

	if sendErr := d.messenger.SendText(ctx, chatID, text); sendErr != nil {
		logger(ctx).Error("Failed to send error message", "error", sendErr)
	}
	return err
}
