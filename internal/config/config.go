package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default values for the optional settings.
const (
	DefaultListenAddr     = ":8080"
	DefaultWorkers        = 16
	DefaultSendRate       = 25
	DefaultHandlerTimeout = time.Minute
	DefaultLogLevel       = "info"
)

// Global configuration variables
var (
	// BotToken is the Telegram bot token
	BotToken string
	// TMDBAPIKey is the API key for TheMovieDB
	TMDBAPIKey string
	// ListenAddr is where the keep-alive server listens
	ListenAddr string
	// Workers bounds how many updates are handled at once
	Workers int
	// SendRate is the outbound Telegram calls allowed per second; 0 disables throttling
	SendRate int
	// HandlerTimeout bounds the time spent on a single update
	HandlerTimeout time.Duration
	// LogLevel is one of debug, info, warn or error
	LogLevel string
)

// SetDefaults registers the default values with viper.
func SetDefaults() {
	viper.SetDefault("ListenAddr", DefaultListenAddr)
	viper.SetDefault("Workers", DefaultWorkers)
	viper.SetDefault("SendRate", DefaultSendRate)
	viper.SetDefault("HandlerTimeout", DefaultHandlerTimeout)
	viper.SetDefault("log.level", DefaultLogLevel)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	BotToken = viper.GetString("BotToken")
	TMDBAPIKey = viper.GetString("TMDBAPIKey")
	ListenAddr = viper.GetString("ListenAddr")
	Workers = viper.GetInt("Workers")
	SendRate = viper.GetInt("SendRate")
	HandlerTimeout = viper.GetDuration("HandlerTimeout")
	LogLevel = viper.GetString("log.level")
}

// Validate reports missing required settings.
func Validate() error {
	if BotToken == "" {
		return fmt.Errorf("bot token is required (set BOT_TOKEN or BotToken in config)")
	}
	if TMDBAPIKey == "" {
		return fmt.Errorf("TMDB API key is required (set TMDB_API_KEY or TMDBAPIKey in config)")
	}
	if Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", Workers)
	}
	if SendRate < 0 {
		return fmt.Errorf("send rate must not be negative, got %d", SendRate)
	}
	return nil
}
