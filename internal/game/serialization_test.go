package game

import (
	"testing"
	"time"

	"github.com/HabbuBB/mini-yahtzee-go/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumIgnoresTimestamp(t *testing.T) {
	e := NewRoundEngine(dice.NewSequence(4), nil, nil)
	first := e.Snapshot()
	second := e.Snapshot()
	second.Timestamp = first.Timestamp.Add(time.Hour)

	a, err := first.ComputeChecksum()
	require.NoError(t, err)
	b, err := second.ComputeChecksum()
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.Len(t, a.Hash, 64)
	assert.Equal(t, 1, a.Version)
}

func TestChecksumDetectsStateChange(t *testing.T) {
	e := NewRoundEngine(dice.NewSequence(4), nil, nil)
	before := e.Snapshot()
	checksum, err := before.ComputeChecksum()
	require.NoError(t, err)

	e.Throw()
	after := e.Snapshot()

	ok, err := after.VerifyChecksum(checksum)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = before.VerifyChecksum(checksum)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeterministicRepresentationCoversDice(t *testing.T) {
	s := Snapshot{GameID: "g"}
	s.Faces[2] = 5
	s.Held[2] = true

	repr := s.deterministicRepresentation()
	assert.Contains(t, repr, "DIE:2|5|true")
	assert.Contains(t, repr, "GAME:g|")
}
