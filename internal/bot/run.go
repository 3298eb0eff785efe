package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/reelbot/internal/metrics"
)

type loggerKey struct{}

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// Run handles updates until the channel closes or ctx is cancelled. Every
// update is its own unit of work; at most the configured number of workers
// run at once. Units already started are waited for before Run returns.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan Update) error {
	var g errgroup.Group
	g.SetLimit(d.opts.workers)

	slog.Info("Dispatcher started", "workers", d.opts.workers)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case upd, ok := <-updates:
			if !ok {
				break loop
			}
			g.Go(func() error {
				d.Handle(ctx, upd)
				return nil
			})
		}
	}

	_ = g.Wait()
	slog.Info("Dispatcher stopped")
	return ctx.Err()
}

// Handle processes one update. Failures have already been reported to the
// user by the time Handle returns; they are only logged and counted here.
func (d *Dispatcher) Handle(ctx context.Context, upd Update) {
	kind, chatID := describe(upd)
	if kind == "" {
		return
	}

	l := slog.Default().With("update_id", upd.ID, "request_id", uuid.NewString(), "chat_id", chatID, "type", kind)
	ctx = withLogger(ctx, l)
	if d.opts.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.handlerTimeout)
		defer cancel()
	}

	start := time.Now()
	err := d.safeHandle(ctx, upd)
	metrics.UpdateDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
		l.Debug("Update finished with error", "error", err)
	}
	metrics.UpdatesTotal.WithLabelValues(kind, status).Inc()
}

func (d *Dispatcher) safeHandle(ctx context.Context, upd Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger(ctx).Error("Panic while handling update", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	switch {
	case upd.Callback != nil:
		return d.HandleCallback(ctx, *upd.Callback)
	case upd.Command != nil:
		return d.HandleCommand(ctx, *upd.Command)
	default:
		return nil
	}
}

func describe(upd Update) (kind string, chatID int64) {
	switch {
	case upd.Callback != nil:
		return "callback", upd.Callback.ChatID
	case upd.Command != nil:
		return "command", upd.Command.ChatID
	default:
		return "", 0
	}
}
