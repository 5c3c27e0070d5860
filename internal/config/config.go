package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidLogLevel is returned for an unknown logging.level.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned for an unknown logging.format.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidReplaySize is returned for a negative replay.max_states.
	ErrInvalidReplaySize = errors.New("invalid replay size")
)

// Config holds the application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// GameConfig configures the round engine.
type GameConfig struct {
	// Seed for the dice. Zero draws a seed from crypto/rand at startup.
	Seed int64 `mapstructure:"seed"`
}

// ReplayConfig configures the in-memory replay.
type ReplayConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	MaxStates int  `mapstructure:"max_states"`
}

// EnvPrefix is the prefix of environment overrides, e.g. YAHTZEE_GAME_SEED.
const EnvPrefix = "YAHTZEE"

// Load reads configuration from path. A missing file is not an error: the
// defaults and environment overrides are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.seed", 0)
	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.max_states", 500)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Replay.MaxStates < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReplaySize, c.Replay.MaxStates)
	}
	return nil
}
