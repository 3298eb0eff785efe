package cmd

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/reelbot/internal/bot"
	"github.com/lepinkainen/reelbot/internal/config"
	"github.com/lepinkainen/reelbot/internal/detail"
	"github.com/lepinkainen/reelbot/internal/keepalive"
	"github.com/lepinkainen/reelbot/internal/metrics"
	"github.com/lepinkainen/reelbot/internal/pager"
	"github.com/lepinkainen/reelbot/internal/ratelimit"
	"github.com/lepinkainen/reelbot/internal/session"
	"github.com/lepinkainen/reelbot/internal/telegram"
	"github.com/lepinkainen/reelbot/internal/tmdb"
)

const tmdbTimeout = 30 * time.Second

var errUpdatesClosed = stdErrors.New("telegram update stream closed")

// newMessenger is replaced in tests to avoid talking to Telegram.
var newMessenger = func(token string, limiter *ratelimit.Limiter) (messenger, error) {
	return telegram.New(token, metrics.InstrumentDoer("telegram", &http.Client{}), telegram.WithLimiter(limiter))
}

type messenger interface {
	bot.Messenger
	Updates(ctx context.Context) <-chan bot.Update
}

// serve wires the bot together and runs it with the keep-alive server until
// ctx is cancelled or either of them fails.
func serve(ctx context.Context) error {
	if err := config.Validate(); err != nil {
		return err
	}

	metrics.Register()
	if err := telegram.InstallLogger(slog.Default()); err != nil {
		slog.Warn("Failed to install Telegram logger", "error", err)
	}

	catalog := tmdb.NewClient(config.TMDBAPIKey,
		tmdb.WithHTTPClient(metrics.InstrumentDoer("tmdb", &http.Client{Timeout: tmdbTimeout})),
	)

	tg, err := newMessenger(config.BotToken, ratelimit.New("telegram", config.SendRate))
	if err != nil {
		return err
	}

	dispatcher := bot.New(tg,
		session.NewMemoryStore(),
		pager.New(catalog),
		detail.New(catalog),
		bot.WithWorkers(config.Workers),
		bot.WithHandlerTimeout(config.HandlerTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return keepalive.New(config.ListenAddr).Run(gctx)
	})
	g.Go(func() error {
		if err := dispatcher.Run(gctx, tg.Updates(gctx)); err != nil {
			return err
		}
		return errUpdatesClosed
	})

	slog.Info("Bot running", "listen", config.ListenAddr, "workers", config.Workers, "send_rate", config.SendRate)

	if err := g.Wait(); err != nil && !stdErrors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("Bot stopped")
	return nil
}
