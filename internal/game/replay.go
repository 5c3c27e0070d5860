package game

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultReplayStates bounds the number of snapshots a replay keeps.
const DefaultReplayStates = 500

// Replay is an in-memory record of the snapshots a game went through.
type Replay struct {
	GameID       string
	States       []Snapshot
	CurrentIndex int
	maxStates    int
	lastHash     string
	logger       *zap.Logger
	mu           sync.RWMutex
}

// NewReplay creates an empty replay keeping at most maxStates snapshots.
// A non-positive maxStates uses DefaultReplayStates.
func NewReplay(gameID string, maxStates int, logger *zap.Logger) *Replay {
	if maxStates <= 0 {
		maxStates = DefaultReplayStates
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replay{
		GameID:    gameID,
		States:    make([]Snapshot, 0),
		maxStates: maxStates,
		logger:    logger,
	}
}

// RecordState appends a snapshot, stamping it with the recording time when
// it carries none. A snapshot identical to the last recorded one is skipped
// and RecordState returns false. When the replay is full the oldest snapshot
// is dropped.
func (r *Replay) RecordState(snapshot Snapshot) bool {
	checksum, err := snapshot.ComputeChecksum()
	if err != nil {
		r.logger.Warn("failed to checksum snapshot", zap.String("game_id", r.GameID), zap.Error(err))
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if checksum.Hash == r.lastHash {
		return false
	}
	r.lastHash = checksum.Hash

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now()
	}
	r.States = append(r.States, snapshot)
	if len(r.States) > r.maxStates {
		r.States = r.States[len(r.States)-r.maxStates:]
		if r.CurrentIndex > 0 {
			r.CurrentIndex--
		}
	}
	return true
}

// Start moves the cursor to the first state and returns it.
func (r *Replay) Start() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
	if len(r.States) == 0 {
		return Snapshot{}, false
	}
	return r.States[0], true
}

// Next moves the cursor forward and returns the state there.
func (r *Replay) Next() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex+1 < len(r.States) {
		r.CurrentIndex++
		return r.States[r.CurrentIndex], true
	}
	return Snapshot{}, false
}

// Previous moves the cursor back and returns the state there.
func (r *Replay) Previous() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 && r.CurrentIndex < len(r.States) {
		r.CurrentIndex--
		return r.States[r.CurrentIndex], true
	}
	return Snapshot{}, false
}

// Skip moves the cursor by count states, clamped to the recorded range.
func (r *Replay) Skip(count int) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.States) == 0 {
		return Snapshot{}, false
	}

	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.States) {
		newIndex = len(r.States) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	return r.States[r.CurrentIndex], true
}

// Seek moves the cursor to index. Out-of-range indices leave it in place.
func (r *Replay) Seek(index int) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.States) {
		return Snapshot{}, false
	}
	r.CurrentIndex = index
	return r.States[index], true
}

// Latest moves the cursor to the most recently recorded state and returns it.
func (r *Replay) Latest() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.States) == 0 {
		return Snapshot{}, false
	}
	r.CurrentIndex = len(r.States) - 1
	return r.States[r.CurrentIndex], true
}

// Cursor returns the index of the state the cursor is on.
func (r *Replay) Cursor() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.CurrentIndex
}

// Size returns the number of recorded states.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// Clear drops every recorded state.
func (r *Replay) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = make([]Snapshot, 0)
	r.CurrentIndex = 0
	r.lastHash = ""
}
