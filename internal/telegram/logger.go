package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// slogLogger routes the library's internal log lines through slog.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Println(v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l slogLogger) Printf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// InstallLogger replaces the library's default logger.
func InstallLogger(logger *slog.Logger) error {
	return tgbotapi.SetLogger(slogLogger{logger: logger.With("component", "telegram")})
}
