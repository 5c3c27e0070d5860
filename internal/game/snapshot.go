package game

import (
	"time"

	"github.com/HabbuBB/mini-yahtzee-go/internal/game/dice"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/rules"
)

// CategoryView is the read-only state of one point category.
type CategoryView struct {
	Face     int
	Selected bool
	Locked   bool
	Score    int
}

// Snapshot is a read-only copy of the game state for the presentation layer.
type Snapshot struct {
	GameID         string
	Round          int
	Phase          rules.ThrowPhase
	Faces          [dice.Count]int
	Held           [dice.Count]bool
	Thrown         bool
	ThrowsLeft     int
	Categories     [CategoryCount]CategoryView
	TotalScore     int
	BonusRemaining int
	BonusMessage   string
	Status         string
	RoundEnded     bool
	GameOver       bool
	ActionLabel    string
	// Timestamp is zero on engine snapshots so equal states compare equal.
	// Replay.RecordState stamps it when the snapshot is recorded.
	Timestamp time.Time
}

// Snapshot returns the current state. ThrowsLeft is always in 0..3.
func (e *RoundEngine) Snapshot() Snapshot {
	s := Snapshot{
		GameID:         e.gameID,
		Round:          e.tracker.RoundNumber(),
		Phase:          e.tracker.Phase(),
		Faces:          e.faces,
		Held:           e.held,
		Thrown:         e.faces[0] != 0,
		ThrowsLeft:     e.tracker.ThrowsLeft(),
		TotalScore:     e.totalScore,
		BonusRemaining: e.bonusRemaining,
		BonusMessage:   bonusMessage(e.bonusRemaining),
		Status:         e.status,
		RoundEnded:     e.roundEnded,
		GameOver:       e.gameOver,
		ActionLabel:    e.actionLabel(),
	}
	if e.gameOver {
		s.Phase = rules.PhaseGameOver
	}
	for i := range s.Categories {
		s.Categories[i] = CategoryView{
			Face:     i + 1,
			Selected: e.selected[i],
			Locked:   e.locked[i],
			Score:    e.score[i],
		}
	}
	return s
}

func (e *RoundEngine) actionLabel() string {
	switch {
	case e.gameOver:
		return LabelRestart
	case e.roundEnded:
		return LabelNextRound
	default:
		return LabelThrow
	}
}
