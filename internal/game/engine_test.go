package game_test

import (
	"math/rand"
	"testing"

	"github.com/HabbuBB/mini-yahtzee-go/internal/game"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/dice"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/rules"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/watchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// roundDraws builds the faces drawn over one unheld round: three throws of
// five dice, where only the final throw's faces matter.
func roundDraws(final [dice.Count]int) []int {
	draws := make([]int, 0, 3*dice.Count)
	for i := 0; i < 2*dice.Count; i++ {
		draws = append(draws, 1)
	}
	return append(draws, final[:]...)
}

func newEngine(t *testing.T, faces ...int) (*game.RoundEngine, *dice.Sequence) {
	t.Helper()
	seq := dice.NewSequence(faces...)
	return game.NewRoundEngine(seq, zaptest.NewLogger(t), nil), seq
}

func throwTimes(t *testing.T, e *game.RoundEngine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		out := e.Throw()
		require.True(t, out.Accepted, "throw %d rejected: %s", i, out.Reason)
	}
}

// playRound throws three times, scores category and, unless it was the
// last open category, advances to the next round.
func playRound(t *testing.T, e *game.RoundEngine, category int) {
	t.Helper()
	throwTimes(t, e, 3)
	require.True(t, e.ToggleCategory(category).Accepted)
	if !e.Snapshot().GameOver {
		require.True(t, e.Throw().Accepted, "advancing throw rejected")
	}
}

func TestNewRoundEngineInitialState(t *testing.T) {
	e, _ := newEngine(t, 1)
	s := e.Snapshot()

	assert.NotEmpty(t, s.GameID)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, rules.PhaseRoundStart, s.Phase)
	assert.Equal(t, 3, s.ThrowsLeft)
	assert.False(t, s.Thrown)
	assert.Equal(t, [dice.Count]bool{}, s.Held)
	assert.Equal(t, game.StatusThrowDice, s.Status)
	assert.Equal(t, "You are 63 points away from bonus", s.BonusMessage)
	assert.Equal(t, 63, s.BonusRemaining)
	assert.Equal(t, 0, s.TotalScore)
	assert.Equal(t, game.LabelThrow, s.ActionLabel)
	assert.False(t, s.RoundEnded)
	assert.False(t, s.GameOver)
	for i, c := range s.Categories {
		assert.Equal(t, i+1, c.Face)
		assert.False(t, c.Selected)
		assert.False(t, c.Locked)
		assert.Equal(t, 0, c.Score)
	}
}

func TestToggleHoldBeforeFirstThrow(t *testing.T) {
	e, _ := newEngine(t, 1)

	out := e.ToggleHold(0)

	assert.False(t, out.Accepted)
	assert.Equal(t, game.StatusThrowFirst, out.Reason)
	s := e.Snapshot()
	assert.Equal(t, game.StatusThrowFirst, s.Status)
	assert.Equal(t, [dice.Count]bool{}, s.Held)
	assert.Equal(t, 3, s.ThrowsLeft)
}

func TestToggleHoldFlips(t *testing.T) {
	e, _ := newEngine(t, 2)
	throwTimes(t, e, 1)

	require.True(t, e.ToggleHold(4).Accepted)
	assert.True(t, e.Snapshot().Held[4])

	require.True(t, e.ToggleHold(4).Accepted)
	assert.False(t, e.Snapshot().Held[4])
}

func TestThrowStatusProgression(t *testing.T) {
	e, _ := newEngine(t, 3, 3, 4, 3, 6)

	expected := []struct {
		throwsLeft int
		status     string
		phase      rules.ThrowPhase
	}{
		{2, game.StatusThrowAgain, rules.PhaseRolling},
		{1, game.StatusThrowAgain, rules.PhaseRolling},
		{0, game.StatusSelectPoints, rules.PhaseScoring},
	}

	for i, exp := range expected {
		require.True(t, e.Throw().Accepted)
		s := e.Snapshot()
		assert.Equal(t, exp.throwsLeft, s.ThrowsLeft, "throw %d", i)
		assert.Equal(t, exp.status, s.Status, "throw %d", i)
		assert.Equal(t, exp.phase, s.Phase, "throw %d", i)
		assert.True(t, s.Thrown)
	}
}

func TestScoreThreeThrees(t *testing.T) {
	e, _ := newEngine(t, 3, 3, 4, 3, 6)
	throwTimes(t, e, 3)

	require.Equal(t, [dice.Count]int{3, 3, 4, 3, 6}, e.Snapshot().Faces)

	out := e.ToggleCategory(2)
	require.True(t, out.Accepted)

	s := e.Snapshot()
	assert.Equal(t, 9, s.Categories[2].Score)
	assert.True(t, s.Categories[2].Selected)
	assert.False(t, s.Categories[2].Locked)
	assert.True(t, s.RoundEnded)
	assert.Equal(t, 9, s.TotalScore)
	assert.Equal(t, "You are 54 points away from bonus", s.BonusMessage)
	assert.Equal(t, game.StatusPointsSelected, s.Status)
	assert.Equal(t, game.LabelNextRound, s.ActionLabel)
}

func TestThrowKeepsHeldDice(t *testing.T) {
	e, seq := newEngine(t, 1, 2, 3, 4, 5, 6, 6, 6)
	throwTimes(t, e, 1)
	require.Equal(t, [dice.Count]int{1, 2, 3, 4, 5}, e.Snapshot().Faces)

	require.True(t, e.ToggleHold(0).Accepted)
	require.True(t, e.ToggleHold(2).Accepted)
	throwTimes(t, e, 1)

	assert.Equal(t, [dice.Count]int{1, 6, 3, 6, 6}, e.Snapshot().Faces)
	assert.Equal(t, 8, seq.Drawn(), "held dice must not draw faces")
}

func TestThrowRejectedBeforeSelectingPoints(t *testing.T) {
	e, seq := newEngine(t, 2, 5)
	throwTimes(t, e, 3)
	before := e.Snapshot()
	drawn := seq.Drawn()

	out := e.Throw()

	assert.False(t, out.Accepted)
	assert.Equal(t, game.StatusPointsBeforeThrow, out.Reason)
	after := e.Snapshot()
	assert.Equal(t, game.StatusPointsBeforeThrow, after.Status)
	assert.Equal(t, before.Faces, after.Faces)
	assert.Equal(t, 0, after.ThrowsLeft)
	assert.Equal(t, before.Categories, after.Categories)
	assert.Equal(t, drawn, seq.Drawn())
}

func TestToggleCategoryBeforeThirdThrow(t *testing.T) {
	e, _ := newEngine(t, 4)
	throwTimes(t, e, 2)

	out := e.ToggleCategory(3)

	assert.False(t, out.Accepted)
	assert.Equal(t, game.StatusThrowThreeTimes, out.Reason)
	assert.False(t, e.Snapshot().Categories[3].Selected)
}

func TestSelectThenDeselectRestoresScores(t *testing.T) {
	e, _ := newEngine(t, 3, 3, 4, 3, 6)
	throwTimes(t, e, 3)
	before := e.Snapshot()

	require.True(t, e.ToggleCategory(2).Accepted)
	require.True(t, e.ToggleCategory(2).Accepted)

	after := e.Snapshot()
	assert.Equal(t, before.Categories, after.Categories)
	assert.Equal(t, before.TotalScore, after.TotalScore)
	assert.Equal(t, before.BonusMessage, after.BonusMessage)
	assert.Equal(t, game.StatusSelectPoints, after.Status)

	// Nothing new was committed, so the round cannot advance.
	out := e.Throw()
	assert.False(t, out.Accepted)
	assert.Equal(t, game.StatusPointsBeforeThrow, out.Reason)
}

func TestAdvanceStartsNewRound(t *testing.T) {
	e, seq := newEngine(t, 3, 3, 4, 3, 6)
	throwTimes(t, e, 3)
	require.True(t, e.ToggleHold(1).Accepted)
	require.True(t, e.ToggleCategory(3).Accepted)
	drawn := seq.Drawn()

	require.True(t, e.Throw().Accepted)

	s := e.Snapshot()
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, 3, s.ThrowsLeft)
	assert.Equal(t, game.StatusThrowDice, s.Status)
	assert.Equal(t, [dice.Count]bool{}, s.Held)
	assert.False(t, s.RoundEnded)
	assert.True(t, s.Categories[3].Locked)
	assert.Equal(t, 4, s.Categories[3].Score)
	assert.Equal(t, [dice.Count]int{3, 3, 4, 3, 6}, s.Faces, "faces re-roll on the next throw")
	assert.Equal(t, drawn, seq.Drawn())
}

func TestLockedCategoryRejected(t *testing.T) {
	e, _ := newEngine(t, 4, 4, 1, 2, 3)
	playRound(t, e, 3)
	throwTimes(t, e, 3)

	out := e.ToggleCategory(3)

	assert.False(t, out.Accepted)
	assert.Equal(t, "You already selected points for 4", out.Reason)
	s := e.Snapshot()
	assert.Equal(t, 8, s.Categories[3].Score)
	assert.True(t, s.Categories[3].Selected)
}

func TestSwitchingCategoriesWithinRound(t *testing.T) {
	e, _ := newEngine(t, 1, 1, 2, 2, 2)
	throwTimes(t, e, 3)

	require.True(t, e.ToggleCategory(0).Accepted)
	require.True(t, e.ToggleCategory(1).Accepted)
	require.True(t, e.ToggleCategory(0).Accepted)

	s := e.Snapshot()
	assert.Equal(t, 0, s.Categories[0].Score)
	assert.Equal(t, 6, s.Categories[1].Score)
	assert.Equal(t, 6, s.TotalScore)

	require.True(t, e.Throw().Accepted)
	s = e.Snapshot()
	assert.True(t, s.Categories[1].Locked)
	assert.False(t, s.Categories[0].Locked)
}

func TestGameOverAndReset(t *testing.T) {
	e, _ := newEngine(t, 6, 6, 6, 6, 6)
	initial := e.Snapshot()

	for c := 0; c < game.CategoryCount; c++ {
		playRound(t, e, c)
		if c < game.CategoryCount-1 {
			assert.False(t, e.Snapshot().GameOver, "game over after %d categories", c+1)
		}
	}

	s := e.Snapshot()
	require.True(t, s.GameOver)
	assert.Equal(t, game.StatusGameOver, s.Status)
	assert.Equal(t, rules.PhaseGameOver, s.Phase)
	assert.Equal(t, game.LabelRestart, s.ActionLabel)
	assert.Equal(t, 30, s.TotalScore)

	out := e.Throw()
	assert.False(t, out.Accepted)
	assert.Equal(t, game.StatusGameOver, out.Reason)

	// Deselecting the last category reopens the game.
	require.True(t, e.ToggleCategory(5).Accepted)
	assert.False(t, e.Snapshot().GameOver)
	require.True(t, e.ToggleCategory(5).Accepted)
	require.True(t, e.Snapshot().GameOver)

	require.True(t, e.Action().Accepted)

	reset := e.Snapshot()
	initialSum, err := initial.ComputeChecksum()
	require.NoError(t, err)
	ok, err := reset.VerifyChecksum(initialSum)
	require.NoError(t, err)
	assert.True(t, ok, "reset must restore the initial state")
	assert.Equal(t, initial.GameID, reset.GameID)
}

func TestResetMidRound(t *testing.T) {
	e, _ := newEngine(t, 2, 2, 2, 5, 5)
	initial := e.Snapshot()
	throwTimes(t, e, 2)
	require.True(t, e.ToggleHold(3).Accepted)

	require.True(t, e.Reset().Accepted)

	s := e.Snapshot()
	assert.Equal(t, initial.Faces, s.Faces)
	assert.Equal(t, initial.Held, s.Held)
	assert.Equal(t, initial.ThrowsLeft, s.ThrowsLeft)
	assert.Equal(t, initial.Status, s.Status)
	assert.Equal(t, initial.Round, s.Round)
}

func TestActionThrowsWhileInProgress(t *testing.T) {
	e, _ := newEngine(t, 5)

	require.True(t, e.Action().Accepted)
	assert.Equal(t, 2, e.Snapshot().ThrowsLeft)
}

func TestBonusBoundary(t *testing.T) {
	// Three of every face scores exactly 63, which is not yet a bonus.
	var draws []int
	for face := 1; face <= dice.Sides; face++ {
		other := face%dice.Sides + 1
		draws = append(draws, roundDraws([dice.Count]int{face, face, face, other, other})...)
	}
	e, _ := newEngine(t, draws...)

	for c := 0; c < game.CategoryCount; c++ {
		playRound(t, e, c)
	}

	s := e.Snapshot()
	require.True(t, s.GameOver)
	assert.Equal(t, 63, s.TotalScore)
	assert.Equal(t, 0, s.BonusRemaining)
	assert.Equal(t, "You are 0 points away from bonus", s.BonusMessage)
}

func TestBonusAchievedAboveThreshold(t *testing.T) {
	var draws []int
	for face := 1; face <= dice.Sides; face++ {
		other := face%dice.Sides + 1
		final := [dice.Count]int{face, face, face, other, other}
		if face == dice.Sides {
			final = [dice.Count]int{6, 6, 6, 6, 1}
		}
		draws = append(draws, roundDraws(final)...)
	}
	e, _ := newEngine(t, draws...)

	for c := 0; c < game.CategoryCount; c++ {
		playRound(t, e, c)
	}

	s := e.Snapshot()
	assert.Equal(t, 69, s.TotalScore)
	assert.Equal(t, -6, s.BonusRemaining)
	assert.Equal(t, game.BonusAchievedMessage, s.BonusMessage)
}

func TestOutOfRangeIndicesRejected(t *testing.T) {
	e, _ := newEngine(t, 1)
	throwTimes(t, e, 1)

	for _, i := range []int{-1, dice.Count} {
		out := e.ToggleHold(i)
		assert.False(t, out.Accepted)
		assert.Equal(t, game.StatusInvalidDie, out.Reason)
	}
	for _, i := range []int{-1, game.CategoryCount} {
		out := e.ToggleCategory(i)
		assert.False(t, out.Accepted)
		assert.Equal(t, game.StatusInvalidCategory, out.Reason)
	}
}

func TestThrowsLeftStaysInRange(t *testing.T) {
	e := game.NewRoundEngine(dice.NewSeededSource(99), zaptest.NewLogger(t), nil)
	intents := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		before := e.Snapshot()
		switch intents.Intn(4) {
		case 0:
			e.ToggleHold(intents.Intn(dice.Count))
		case 1:
			e.ToggleCategory(intents.Intn(game.CategoryCount))
		case 2:
			e.Throw()
		default:
			e.Action()
		}
		s := e.Snapshot()
		require.GreaterOrEqual(t, s.ThrowsLeft, 0, "intent %d", i)
		require.LessOrEqual(t, s.ThrowsLeft, 3, "intent %d", i)

		if !before.GameOver {
			for d := range before.Held {
				if before.Held[d] {
					require.Equal(t, before.Faces[d], s.Faces[d], "held die %d changed at intent %d", d, i)
				}
			}
		}

		selected := 0
		total := 0
		for _, c := range s.Categories {
			if c.Selected {
				selected++
			}
			total += c.Score
			require.GreaterOrEqual(t, c.Score, 0, "intent %d", i)
		}
		require.Equal(t, total, s.TotalScore, "intent %d", i)
		require.Equal(t, selected == game.CategoryCount, s.GameOver, "intent %d", i)
	}
}

func TestEngineEventsFeedWatchers(t *testing.T) {
	bus := rules.NewEventBus()
	registry := rules.NewWatcherRegistry()
	stats := watchers.NewRoundStatsWatcher()
	registry.AddWatcher(stats)
	registry.Attach(bus)

	var selected []rules.Event
	bus.SubscribeTyped(rules.EventCategorySelected, func(evt rules.Event) {
		selected = append(selected, evt)
	})

	e := game.NewRoundEngine(dice.NewSequence(3, 3, 4, 3, 6), zaptest.NewLogger(t), bus)
	e.ToggleHold(0)
	throwTimes(t, e, 3)
	require.True(t, e.ToggleCategory(2).Accepted)
	require.True(t, e.Throw().Accepted)

	assert.Equal(t, 3, stats.Throws())
	assert.Equal(t, 0, stats.ThrowsInRound())
	assert.Equal(t, 1, stats.RoundsStarted())
	assert.Equal(t, 1, stats.Rejected(game.StatusThrowFirst))
	require.Len(t, selected, 1)
	assert.Equal(t, 2, selected[0].Index)
	assert.Equal(t, 9, selected[0].Amount)
	assert.Equal(t, e.GameID(), selected[0].GameID)
}
