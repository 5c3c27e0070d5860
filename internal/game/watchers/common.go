package watchers

import (
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/rules"
)

// RoundStatsKey is the registry key of RoundStatsWatcher.
const RoundStatsKey = "RoundStatsWatcher"

// RoundStatsWatcher tracks throws, rounds, rejected intents and finished games.
// Its condition is met once a game has been completed.
type RoundStatsWatcher struct {
	*rules.BaseWatcher
	throws         int
	throwsInRound  int
	roundsStarted  int
	rejected       map[string]int // reason -> count
	gamesCompleted int
	bonusAchieved  bool
}

// NewRoundStatsWatcher creates a new round statistics watcher.
func NewRoundStatsWatcher() *RoundStatsWatcher {
	return &RoundStatsWatcher{
		BaseWatcher: rules.NewBaseWatcher(RoundStatsKey),
		rejected:    make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *RoundStatsWatcher) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventDiceThrown:
		w.throws++
		w.throwsInRound++
	case rules.EventRoundStarted:
		w.roundsStarted++
		w.throwsInRound = 0
	case rules.EventIntentRejected:
		w.rejected[event.Description]++
	case rules.EventBonusAchieved:
		w.bonusAchieved = true
	case rules.EventGameOver:
		w.gamesCompleted++
		w.SetCondition(true)
	case rules.EventGameReset:
		w.throwsInRound = 0
		w.bonusAchieved = false
		w.SetCondition(false)
	}
}

// Reset clears the watcher's state.
func (w *RoundStatsWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.throws = 0
	w.throwsInRound = 0
	w.roundsStarted = 0
	w.rejected = make(map[string]int)
	w.gamesCompleted = 0
	w.bonusAchieved = false
}

// Throws returns the number of dice throws seen.
func (w *RoundStatsWatcher) Throws() int {
	return w.throws
}

// ThrowsInRound returns the dice throws seen since the current round started.
func (w *RoundStatsWatcher) ThrowsInRound() int {
	return w.throwsInRound
}

// RoundsStarted returns how many new rounds began after the first.
func (w *RoundStatsWatcher) RoundsStarted() int {
	return w.roundsStarted
}

// Rejected returns how many intents were rejected with the given reason.
func (w *RoundStatsWatcher) Rejected(reason string) int {
	return w.rejected[reason]
}

// TotalRejected returns the number of rejected intents.
func (w *RoundStatsWatcher) TotalRejected() int {
	total := 0
	for _, n := range w.rejected {
		total += n
	}
	return total
}

// GamesCompleted returns how many games reached game over.
func (w *RoundStatsWatcher) GamesCompleted() int {
	return w.gamesCompleted
}

// BonusAchieved reports whether the current game crossed the bonus threshold.
func (w *RoundStatsWatcher) BonusAchieved() bool {
	return w.bonusAchieved
}
