// Package dice provides the face sources used to throw the five game dice.
//
// The round engine never calls a global random function. It draws every face
// from a Source, so production code can use a seeded math/rand source while
// tests supply a fixed sequence.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

const (
	// Sides is the number of faces on a die.
	Sides = 6
	// Count is the number of dice thrown each round.
	Count = 5
)

// Source draws a single die face in the range 1..Sides.
type Source interface {
	Face() int
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() int

// Face calls f.
func (f SourceFunc) Face() int {
	return f()
}

// SeededSource draws unbiased faces from a math/rand generator.
// Two sources built from the same seed produce the same faces.
type SeededSource struct {
	rng  *rand.Rand
	seed int64
}

// NewSeededSource creates a deterministic source for the given seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Face returns the next face.
func (s *SeededSource) Face() int {
	return s.rng.Intn(Sides) + 1
}

// Seed returns the seed the source was built from.
func (s *SeededSource) Seed() int64 {
	return s.seed
}

// Sequence replays a fixed list of faces, wrapping around at the end.
type Sequence struct {
	faces []int
	next  int
}

// NewSequence creates a source that yields faces in order.
// Values outside 1..Sides are clamped into range.
func NewSequence(faces ...int) *Sequence {
	clamped := make([]int, len(faces))
	for i, f := range faces {
		switch {
		case f < 1:
			clamped[i] = 1
		case f > Sides:
			clamped[i] = Sides
		default:
			clamped[i] = f
		}
	}
	return &Sequence{faces: clamped}
}

// Face returns the next face of the sequence. An empty sequence always yields 1.
func (s *Sequence) Face() int {
	if len(s.faces) == 0 {
		return 1
	}
	f := s.faces[s.next%len(s.faces)]
	s.next++
	return f
}

// Drawn returns how many faces have been drawn so far.
func (s *Sequence) Drawn() int {
	return s.next
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
