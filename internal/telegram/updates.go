package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lepinkainen/reelbot/internal/bot"
)

// Updates long-polls Telegram and delivers commands and button presses until
// ctx is cancelled. Other update types are dropped. The returned channel is
// closed once polling has stopped.
func (c *Client) Updates(ctx context.Context) <-chan bot.Update {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = c.timeout
	cfg.AllowedUpdates = []string{"message", "callback_query"}

	raw := c.api.GetUpdatesChan(cfg)
	out := make(chan bot.Update)

	go func() {
		defer close(out)
		defer c.api.StopReceivingUpdates()

		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-raw:
				if !ok {
					return
				}
				upd, ok := convertUpdate(u)
				if !ok {
					slog.Debug("Dropping update", "update_id", u.UpdateID)
					continue
				}
				select {
				case out <- upd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func convertUpdate(u tgbotapi.Update) (bot.Update, bool) {
	switch {
	case u.CallbackQuery != nil:
		cq := u.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil {
			// Inline-mode callbacks carry no chat to reply to.
			return bot.Update{}, false
		}
		return bot.Update{
			ID: u.UpdateID,
			Callback: &bot.Callback{
				ID:        cq.ID,
				ChatID:    cq.Message.Chat.ID,
				MessageID: cq.Message.MessageID,
				Data:      cq.Data,
			},
		}, true
	case u.Message != nil && u.Message.Chat != nil && u.Message.IsCommand():
		return bot.Update{
			ID: u.UpdateID,
			Command: &bot.Command{
				ChatID: u.Message.Chat.ID,
				Name:   u.Message.Command(),
				Args:   u.Message.CommandArguments(),
			},
		}, true
	default:
		return bot.Update{}, false
	}
}
