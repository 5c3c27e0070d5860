package game

import (
	"fmt"

	"github.com/HabbuBB/mini-yahtzee-go/internal/game/rules"
)

// Status messages shown to the player.
const (
	StatusThrowDice         = "Throw dice"
	StatusThrowAgain        = "Select and throw dice again"
	StatusSelectPoints      = "Select your points"
	StatusPointsBeforeThrow = "Select your points before next throw"
	StatusThrowFirst        = "You have to throw dice first"
	StatusThrowThreeTimes   = "Throw 3 times before setting points"
	StatusPointsSelected    = "Points selected, click on Next Round"
	StatusGameOver          = "Game over, all points selected"
	StatusInvalidDie        = "Choose a die between 1 and 5"
	StatusInvalidCategory   = "Choose points between 1 and 6"

	BonusAchievedMessage = "You got the bonus!"
)

// Action button labels.
const (
	LabelThrow     = "Throw dice"
	LabelNextRound = "Next round"
	LabelRestart   = "Restart game"
)

// alreadySelectedMessage is the rejection for a category locked in an earlier round.
func alreadySelectedMessage(category int) string {
	return fmt.Sprintf("You already selected points for %d", category+1)
}

// bonusMessage describes the distance to the bonus. The bonus counts as
// achieved only once the total exceeds the threshold.
func bonusMessage(remaining int) string {
	if remaining < 0 {
		return BonusAchievedMessage
	}
	return fmt.Sprintf("You are %d points away from bonus", remaining)
}

// phaseMessage is the status derived from the throw phase at a round boundary.
func phaseMessage(phase rules.ThrowPhase) string {
	switch phase {
	case rules.PhaseScoring:
		return StatusSelectPoints
	case rules.PhaseRolling:
		return StatusThrowAgain
	case rules.PhaseGameOver:
		return StatusGameOver
	default:
		return StatusThrowDice
	}
}
