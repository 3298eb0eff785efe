// Package telegram adapts the Telegram Bot API to the bot package.
package telegram

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/pager"
	"github.com/lepinkainen/reelbot/internal/ratelimit"
)

// Client sends messages through a Telegram bot and receives its updates.
type Client struct {
	api     *tgbotapi.BotAPI
	limiter *ratelimit.Limiter
	timeout int
}

// Option configures a Client.
type Option func(*Client)

// WithLimiter throttles outbound calls. A nil limiter disables throttling.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithPollTimeout sets the long polling timeout in seconds.
func WithPollTimeout(seconds int) Option {
	return func(c *Client) {
		if seconds > 0 {
			c.timeout = seconds
		}
	}
}

// New connects to the Bot API with token and verifies it with getMe. A nil
// httpClient uses an http.Client without a timeout, since long polling holds
// requests open.
func New(token string, httpClient tgbotapi.HTTPClient, opts ...Option) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	return NewWithAPI(api, opts...), nil
}

// NewWithAPI wraps an already connected BotAPI.
func NewWithAPI(api *tgbotapi.BotAPI, opts ...Option) *Client {
	c := &Client{
		api:     api,
		timeout: 60,
	}
	for _, opt := range opts {
		opt(c)
	}
	slog.Info("Authorized on Telegram", "account", api.Self.UserName)
	return c
}

// Username returns the bot account name.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// SendText sends a plain message.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	return c.send(ctx, "sendMessage", tgbotapi.NewMessage(chatID, text))
}

// SendKeyboard sends a message with an inline keyboard attached.
func (c *Client) SendKeyboard(ctx context.Context, chatID int64, text string, kb pager.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = inlineKeyboard(kb)
	return c.send(ctx, "sendMessage", msg)
}

// EditKeyboard replaces the text and keyboard of an earlier message.
func (c *Client) EditKeyboard(ctx context.Context, chatID int64, messageID int, text string, kb pager.Keyboard) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineKeyboard(kb))
	return c.send(ctx, "editMessageText", edit)
}

// SendPhoto uploads the file at photoPath with an HTML caption.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photoPath, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(photoPath))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	return c.send(ctx, "sendPhoto", photo)
}

// AnswerCallback acknowledges a button press, optionally showing text to the user.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return c.send(ctx, "answerCallbackQuery", tgbotapi.NewCallback(callbackID, text))
}

func (c *Client) send(ctx context.Context, method string, chattable tgbotapi.Chattable) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	// BotAPI has no context support; the limiter wait is the last cancellation point.
	if _, err := c.api.Request(chattable); err != nil {
		return fmt.Errorf("telegram %s: %w", method, translateError(err))
	}
	return nil
}

// translateError turns Telegram flood control replies into *errors.RateLimitError.
func translateError(err error) error {
	var apiErr *tgbotapi.Error
	if stdErrors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return errors.NewRateLimitErrorWithRetry(apiErr.Message, time.Duration(apiErr.RetryAfter)*time.Second)
	}
	var valErr tgbotapi.Error
	if stdErrors.As(err, &valErr) && valErr.RetryAfter > 0 {
		return errors.NewRateLimitErrorWithRetry(valErr.Message, time.Duration(valErr.RetryAfter)*time.Second)
	}
	return err
}

func inlineKeyboard(kb pager.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
