package cmd

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/reelbot/internal/config"
)

var runBot = serve

// CLI represents the complete command structure for the reelbot application
type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" name:"log-level"`

	Serve ServeCmd `cmd:"" default:"withargs" help:"Run the Telegram bot (default command)"`
}

// ServeCmd represents the serve command. Zero values leave the configured setting alone.
type ServeCmd struct {
	Token          string `help:"Telegram bot token (overrides BOT_TOKEN)"`
	TMDBKey        string `name:"tmdb-key" help:"TMDB API key (overrides TMDB_API_KEY)"`
	Listen         string `help:"Keep-alive server listen address"`
	Workers        int    `help:"Maximum number of updates handled at once"`
	SendRate       int    `help:"Outbound Telegram calls per second, 0 disables throttling" default:"-1"`
	HandlerTimeout string `help:"Time limit for handling one update (e.g., 30s)"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(slog.LevelInfo)
	initConfig()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("reelbot"),
		kong.Description("A Telegram bot for searching movies and TV shows on TMDB."),
		kong.UsageOnError(),
	)

	if err := updateGlobalConfig(&cli); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// A missing .env is normal in production.
	if err := godotenv.Load(); err != nil && !stdErrors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	config.SetDefaults()

	viper.AutomaticEnv()
	bindings := map[string]string{
		"BotToken":   "BOT_TOKEN",
		"TMDBAPIKey": "TMDB_API_KEY",
		"ListenAddr": "LISTEN_ADDR",
		"log.level":  "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "key", key, "env", env, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stdErrors.As(err, &notFound) {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
		slog.Debug("Config file not found, using environment only")
	}

	config.InitConfig()
}

// updateGlobalConfig applies CLI overrides on top of file and environment settings.
func updateGlobalConfig(cli *CLI) error {
	if cli.LogLevel != "" {
		viper.Set("log.level", cli.LogLevel)
	}

	s := cli.Serve
	if s.Token != "" {
		viper.Set("BotToken", s.Token)
	}
	if s.TMDBKey != "" {
		viper.Set("TMDBAPIKey", s.TMDBKey)
	}
	if s.Listen != "" {
		viper.Set("ListenAddr", s.Listen)
	}
	if s.Workers > 0 {
		viper.Set("Workers", s.Workers)
	}
	if s.SendRate >= 0 {
		viper.Set("SendRate", s.SendRate)
	}
	if s.HandlerTimeout != "" {
		viper.Set("HandlerTimeout", s.HandlerTimeout)
	}

	config.InitConfig()

	level, err := parseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	initLogging(level)
	return nil
}

// Run starts the bot and blocks until SIGINT or SIGTERM.
func (s *ServeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runBot(ctx)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func initLogging(level slog.Level) {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
