package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/reelbot/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	BotToken       string
	TMDBAPIKey     string
	ListenAddr     string
	Workers        int
	SendRate       int
	HandlerTimeout time.Duration
	LogLevel       string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		BotToken:       config.BotToken,
		TMDBAPIKey:     config.TMDBAPIKey,
		ListenAddr:     config.ListenAddr,
		Workers:        config.Workers,
		SendRate:       config.SendRate,
		HandlerTimeout: config.HandlerTimeout,
		LogLevel:       config.LogLevel,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.BotToken = state.BotToken
	config.TMDBAPIKey = state.TMDBAPIKey
	config.ListenAddr = state.ListenAddr
	config.Workers = state.Workers
	config.SendRate = state.SendRate
	config.HandlerTimeout = state.HandlerTimeout
	config.LogLevel = state.LogLevel
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*ConfigState)

// WithBotToken sets the bot token.
func WithBotToken(token string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.BotToken = token
	}
}

// WithTMDBAPIKey sets the TMDB API key.
func WithTMDBAPIKey(key string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.TMDBAPIKey = key
	}
}

// WithWorkers sets the worker count.
func WithWorkers(n int) SetTestConfigOption {
	return func(s *ConfigState) {
		s.Workers = n
	}
}

// WithSendRate sets the outbound send rate.
func WithSendRate(n int) SetTestConfigOption {
	return func(s *ConfigState) {
		s.SendRate = n
	}
}

// SetTestConfigWithOptions installs a valid test configuration, applies opts
// and restores the previous state when the test completes.
func SetTestConfigWithOptions(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	state := ConfigState{
		BotToken:       "123456:test-token",
		TMDBAPIKey:     "test-tmdb-key",
		ListenAddr:     "127.0.0.1:0",
		Workers:        config.DefaultWorkers,
		SendRate:       config.DefaultSendRate,
		HandlerTimeout: config.DefaultHandlerTimeout,
		LogLevel:       config.DefaultLogLevel,
	}
	for _, opt := range opts {
		opt(&state)
	}
	RestoreConfigState(state)
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so a key that was absent stays set.
	})
}
