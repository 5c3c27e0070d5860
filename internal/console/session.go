// Package console is a terminal front end for the round engine. It renders
// engine snapshots as text and turns typed commands into intents.
package console

import (
	"github.com/HabbuBB/mini-yahtzee-go/internal/game"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/dice"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/rules"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/watchers"
	"go.uber.org/zap"
)

// Session wires one engine to its event bus, watchers and replay.
type Session struct {
	engine   *game.RoundEngine
	bus      *rules.EventBus
	registry *rules.WatcherRegistry
	replay   *game.Replay
	logger   *zap.Logger
}

// SessionOptions configures NewSession.
type SessionOptions struct {
	Source          dice.Source
	ReplayEnabled   bool
	ReplayMaxStates int
}

// NewSession creates a session around a fresh engine.
func NewSession(opts SessionOptions, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	bus := rules.NewEventBus()
	registry := rules.NewWatcherRegistry()
	registry.AddWatcher(watchers.NewRoundStatsWatcher())
	registry.Attach(bus)

	engine := game.NewRoundEngine(opts.Source, logger, bus)

	s := &Session{
		engine:   engine,
		bus:      bus,
		registry: registry,
		logger:   logger,
	}
	if opts.ReplayEnabled {
		s.replay = game.NewReplay(engine.GameID(), opts.ReplayMaxStates, logger)
		s.replay.RecordState(engine.Snapshot())
	}

	logger.Info("session started",
		zap.String("game_id", engine.GameID()),
		zap.Bool("replay", opts.ReplayEnabled),
	)
	return s
}

// Snapshot returns the current engine state.
func (s *Session) Snapshot() game.Snapshot {
	return s.engine.Snapshot()
}

// Stats returns the round statistics watcher.
func (s *Session) Stats() *watchers.RoundStatsWatcher {
	w, ok := s.registry.GetWatcher(watchers.RoundStatsKey)
	if !ok {
		return nil
	}
	stats, _ := w.(*watchers.RoundStatsWatcher)
	return stats
}

// ResetStats clears every registered watcher.
func (s *Session) ResetStats() {
	s.registry.ResetAll()
	s.logger.Debug("statistics reset", zap.String("game_id", s.engine.GameID()))
}

// Replay returns the session replay, or nil when replay is disabled.
func (s *Session) Replay() *game.Replay {
	return s.replay
}

// Dispatch applies a command to the engine and records the resulting state.
func (s *Session) Dispatch(cmd Command) game.Outcome {
	var out game.Outcome
	switch cmd.Kind {
	case CommandHold:
		out = s.engine.ToggleHold(cmd.Index)
	case CommandThrow:
		out = s.engine.Throw()
	case CommandCategory:
		out = s.engine.ToggleCategory(cmd.Index)
	case CommandReset:
		out = s.engine.Reset()
	case CommandAction:
		out = s.engine.Action()
	default:
		return game.Outcome{Reason: "unsupported command"}
	}

	if s.replay != nil {
		s.replay.RecordState(s.engine.Snapshot())
	}
	return out
}
