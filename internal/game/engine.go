package game

import (
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/dice"
	"github.com/HabbuBB/mini-yahtzee-go/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CategoryCount is the number of upper-section point categories.
	CategoryCount = 6
	// BonusThreshold is the total the player must exceed to get the bonus.
	BonusThreshold = 63
)

// Outcome reports whether an intent was applied. A rejected intent leaves
// the game untouched apart from the status message, which carries Reason.
type Outcome struct {
	Accepted bool
	Reason   string
}

func accepted() Outcome {
	return Outcome{Accepted: true}
}

// RoundEngine holds the complete state of one game and applies player intents.
// It is not safe for concurrent use; callers serialize intents.
type RoundEngine struct {
	logger *zap.Logger
	source dice.Source
	bus    *rules.EventBus
	gameID string

	faces   [dice.Count]int
	held    [dice.Count]bool
	tracker *rules.RoundTracker

	selected [CategoryCount]bool
	// locked is the selection captured at the last throw; a category locked
	// here was committed in an earlier round and can no longer be toggled.
	locked  [CategoryCount]bool
	score   [CategoryCount]int
	awarded [CategoryCount]int

	totalScore     int
	bonusRemaining int
	roundEnded     bool
	gameOver       bool
	status         string
}

// NewRoundEngine creates an engine drawing faces from source.
// logger and bus may be nil.
func NewRoundEngine(source dice.Source, logger *zap.Logger, bus *rules.EventBus) *RoundEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &RoundEngine{
		logger:  logger,
		source:  source,
		bus:     bus,
		gameID:  uuid.NewString(),
		tracker: rules.NewRoundTracker(),
	}
	e.initialize()

	e.logger.Debug("round engine created", zap.String("game_id", e.gameID))
	return e
}

// initialize sets every field of the game to its starting value.
func (e *RoundEngine) initialize() {
	e.faces = [dice.Count]int{}
	e.held = [dice.Count]bool{}
	e.tracker.Reset()
	e.selected = [CategoryCount]bool{}
	e.locked = [CategoryCount]bool{}
	e.score = [CategoryCount]int{}
	e.awarded = [CategoryCount]int{}
	e.totalScore = 0
	e.bonusRemaining = BonusThreshold
	e.roundEnded = false
	e.gameOver = false
	e.status = StatusThrowDice
}

// GameID returns the identifier of this engine's game.
func (e *RoundEngine) GameID() string {
	return e.gameID
}

// ToggleHold flips the held flag of die i (0-based). Dice cannot be held
// before the first throw of a round.
func (e *RoundEngine) ToggleHold(i int) Outcome {
	if i < 0 || i >= dice.Count {
		return e.reject("toggle_hold", StatusInvalidDie)
	}
	if e.tracker.Fresh() {
		return e.reject("toggle_hold", StatusThrowFirst)
	}

	e.held[i] = !e.held[i]

	eventType := rules.EventDieReleased
	if e.held[i] {
		eventType = rules.EventDieHeld
	}
	e.publish(rules.NewIndexedEvent(eventType, e.gameID, e.tracker.RoundNumber(), i, e.faces[i]))

	e.logger.Debug("die hold toggled",
		zap.String("game_id", e.gameID),
		zap.Int("die", i),
		zap.Bool("held", e.held[i]),
	)
	return accepted()
}

// Throw rolls every unheld die and consumes a throw. Once the throws are
// exhausted the next throw is only allowed after a new category was
// selected; it then advances to the next round, keeping the current faces
// until the first throw of that round.
func (e *RoundEngine) Throw() Outcome {
	if e.gameOver {
		return e.reject("throw", StatusGameOver)
	}
	if !e.roundPlayed() && e.tracker.ThrowsLeft() <= 0 {
		return e.reject("throw", StatusPointsBeforeThrow)
	}

	rolled := false
	if e.tracker.ThrowsLeft() > 0 {
		for i := range e.faces {
			if !e.held[i] {
				e.faces[i] = e.source.Face()
			}
		}
		rolled = true
	}

	newRound := e.tracker.ConsumeThrow()
	e.afterThrow(newRound)

	if rolled {
		evt := rules.NewEvent(rules.EventDiceThrown, e.gameID, e.tracker.RoundNumber())
		evt.Amount = e.tracker.ThrowsLeft()
		evt.Faces = append([]int(nil), e.faces[:]...)
		e.publish(evt)
	}

	e.logger.Debug("dice thrown",
		zap.String("game_id", e.gameID),
		zap.Ints("faces", e.faces[:]),
		zap.Int("throws_left", e.tracker.ThrowsLeft()),
		zap.Bool("rolled", rolled),
		zap.Bool("new_round", newRound),
	)
	return accepted()
}

// roundPlayed reports whether a category was committed since the last throw.
// Comparing against the locked selection covers a player who selects one
// category and deselects another in the same round.
func (e *RoundEngine) roundPlayed() bool {
	if e.selected == e.locked {
		return false
	}
	return e.roundEnded
}

// afterThrow is the round-boundary reaction run after every accepted throw.
func (e *RoundEngine) afterThrow(newRound bool) {
	e.roundEnded = false
	e.locked = e.selected
	e.awarded = [CategoryCount]int{}

	if newRound {
		e.held = [dice.Count]bool{}
		e.publish(rules.NewEvent(rules.EventRoundStarted, e.gameID, e.tracker.RoundNumber()))
	}

	e.status = phaseMessage(e.tracker.Phase())
}

// ToggleCategory selects or deselects category i (0-based, face i+1) for the
// current dice. Scoring is only possible after all throws of the round, and
// categories committed in earlier rounds stay locked.
func (e *RoundEngine) ToggleCategory(i int) Outcome {
	if i < 0 || i >= CategoryCount {
		return e.reject("toggle_category", StatusInvalidCategory)
	}
	if !e.tracker.CanScore() {
		return e.reject("toggle_category", StatusThrowThreeTimes)
	}
	if e.locked[i] {
		return e.reject("toggle_category", alreadySelectedMessage(i))
	}

	e.selected[i] = !e.selected[i]
	points := dice.CategoryPoints(e.faces, i)
	round := e.tracker.RoundNumber()

	if e.selected[i] {
		e.score[i] += points
		e.awarded[i] = points
		e.roundEnded = true
		e.status = StatusPointsSelected
		e.publish(rules.NewIndexedEvent(rules.EventCategorySelected, e.gameID, round, i, points))
	} else {
		// Faces cannot change between select and deselect: a throw locks
		// the selection. A mismatch means that invariant was broken.
		if points != e.awarded[i] {
			e.logger.Warn("category points changed since selection",
				zap.String("game_id", e.gameID),
				zap.Int("category", i),
				zap.Int("awarded", e.awarded[i]),
				zap.Int("recomputed", points),
			)
		}
		e.score[i] -= e.awarded[i]
		e.awarded[i] = 0
		e.gameOver = false
		e.status = StatusSelectPoints
		e.publish(rules.NewIndexedEvent(rules.EventCategoryDeselected, e.gameID, round, i, points))
	}
	e.recomputeTotals()

	if e.allSelected() && !e.gameOver {
		e.gameOver = true
		e.status = StatusGameOver
		evt := rules.NewEvent(rules.EventGameOver, e.gameID, round)
		evt.Amount = e.totalScore
		e.publish(evt)
		e.logger.Info("game over",
			zap.String("game_id", e.gameID),
			zap.Int("total_score", e.totalScore),
		)
	}

	e.logger.Debug("category toggled",
		zap.String("game_id", e.gameID),
		zap.Int("category", i),
		zap.Bool("selected", e.selected[i]),
		zap.Int("points", points),
		zap.Int("total_score", e.totalScore),
	)
	return accepted()
}

// recomputeTotals derives the total and the bonus distance from the category scores.
func (e *RoundEngine) recomputeTotals() {
	hadBonus := e.bonusRemaining < 0

	total := 0
	for _, s := range e.score {
		total += s
	}
	e.totalScore = total
	e.bonusRemaining = BonusThreshold - total

	if !hadBonus && e.bonusRemaining < 0 {
		evt := rules.NewEvent(rules.EventBonusAchieved, e.gameID, e.tracker.RoundNumber())
		evt.Amount = total
		e.publish(evt)
	}
}

func (e *RoundEngine) allSelected() bool {
	for _, s := range e.selected {
		if !s {
			return false
		}
	}
	return true
}

// Reset starts a new game. It is always accepted.
func (e *RoundEngine) Reset() Outcome {
	e.initialize()
	e.publish(rules.NewEvent(rules.EventGameReset, e.gameID, e.tracker.RoundNumber()))
	e.logger.Info("game reset", zap.String("game_id", e.gameID))
	return accepted()
}

// Action is the main button: it restarts a finished game and throws otherwise.
func (e *RoundEngine) Action() Outcome {
	if e.gameOver {
		return e.Reset()
	}
	return e.Throw()
}

// reject records a guidance message for an intent whose precondition failed.
func (e *RoundEngine) reject(intent, reason string) Outcome {
	e.status = reason

	evt := rules.NewEvent(rules.EventIntentRejected, e.gameID, e.tracker.RoundNumber())
	evt.Description = reason
	e.publish(evt)

	e.logger.Debug("intent rejected",
		zap.String("game_id", e.gameID),
		zap.String("intent", intent),
		zap.String("reason", reason),
	)
	return Outcome{Accepted: false, Reason: reason}
}

func (e *RoundEngine) publish(evt rules.Event) {
	if e.bus != nil {
		e.bus.Publish(evt)
	}
}
