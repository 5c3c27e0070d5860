package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HabbuBB/mini-yahtzee-go/internal/config"
	"github.com/HabbuBB/mini-yahtzee-go/internal/console"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/dice"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seedFlag   = flag.Int64("seed", 0, "dice seed (overrides game.seed; 0 keeps the configured value)")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	seed := cfg.Game.Seed
	if *seedFlag != 0 {
		seed = *seedFlag
	}
	if seed == 0 {
		seed, err = dice.NewSeed()
		if err != nil {
			logger.Fatal("failed to generate dice seed", zap.Error(err))
		}
	}

	logger.Info("starting yahtzee",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int64("seed", seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := console.NewSession(console.SessionOptions{
		Source:          dice.NewSeededSource(seed),
		ReplayEnabled:   cfg.Replay.Enabled,
		ReplayMaxStates: cfg.Replay.MaxStates,
	}, logger)

	if err := console.New(session, os.Stdin, os.Stdout, logger).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("console stopped", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("yahtzee stopped",
		zap.Int("total_score", session.Snapshot().TotalScore),
		zap.Int("games_completed", session.Stats().GamesCompleted()),
	)
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Logs go to stderr so they never interleave with the board on stdout.
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
