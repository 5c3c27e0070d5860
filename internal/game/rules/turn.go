package rules

import "fmt"

const (
	// ThrowsPerRound is the number of throws a player gets before scoring.
	ThrowsPerRound = 3
	// roundOver is the transient counter value after the advancing throw.
	roundOver = -1
)

// ThrowPhase represents where a round currently stands.
type ThrowPhase int

const (
	PhaseRoundStart ThrowPhase = iota
	PhaseRolling
	PhaseScoring
	PhaseGameOver
)

var phaseNames = map[ThrowPhase]string{
	PhaseRoundStart: "ROUND_START",
	PhaseRolling:    "ROLLING",
	PhaseScoring:    "SCORING",
	PhaseGameOver:   "GAME_OVER",
}

func (p ThrowPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// PhaseFor maps a throws-left counter to its phase.
// The transient -1 maps to PhaseRoundStart since it is normalized to a fresh round.
func PhaseFor(throwsLeft int) ThrowPhase {
	switch {
	case throwsLeft == 0:
		return PhaseScoring
	case throwsLeft > 0 && throwsLeft < ThrowsPerRound:
		return PhaseRolling
	default:
		return PhaseRoundStart
	}
}

// RoundTracker tracks the throws-left counter and round progression.
type RoundTracker struct {
	throwsLeft  int
	roundNumber int
}

// NewRoundTracker creates a tracker at round 1 with every throw available.
func NewRoundTracker() *RoundTracker {
	return &RoundTracker{
		throwsLeft:  ThrowsPerRound,
		roundNumber: 1,
	}
}

// ThrowsLeft returns the remaining throws in the current round.
func (rt *RoundTracker) ThrowsLeft() int {
	return rt.throwsLeft
}

// RoundNumber returns the current round (1-based).
func (rt *RoundTracker) RoundNumber() int {
	return rt.roundNumber
}

// Phase returns the phase for the current counter.
func (rt *RoundTracker) Phase() ThrowPhase {
	return PhaseFor(rt.throwsLeft)
}

// CanScore reports whether every throw of the round has been used.
func (rt *RoundTracker) CanScore() bool {
	return rt.throwsLeft == 0
}

// Fresh reports whether no throw has been made this round.
func (rt *RoundTracker) Fresh() bool {
	return rt.throwsLeft == ThrowsPerRound
}

// ConsumeThrow decrements the counter. When the counter passes below zero it
// is normalized back to ThrowsPerRound, the round number advances and
// newRound is true. The transient value is never visible to callers.
func (rt *RoundTracker) ConsumeThrow() (newRound bool) {
	rt.throwsLeft--
	if rt.throwsLeft <= roundOver {
		rt.throwsLeft = ThrowsPerRound
		rt.roundNumber++
		return true
	}
	return false
}

// Reset returns the tracker to round 1 with every throw available.
func (rt *RoundTracker) Reset() {
	rt.throwsLeft = ThrowsPerRound
	rt.roundNumber = 1
}
