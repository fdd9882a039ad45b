package game

import (
	"sync"

	"github.com/hikari-lab/lessonsim/internal/game/state"
)

// Replay records sequential GameState snapshots for playback. Because every
// transition already returns an immutable snapshot, recording is just
// appending the returned value.
type Replay struct {
	mu           sync.RWMutex
	LessonID     string
	States       []*state.GameState
	CurrentIndex int
}

// NewReplay creates an empty replay for a lesson.
func NewReplay(lessonID string) *Replay {
	return &Replay{LessonID: lessonID}
}

// Record appends a snapshot.
func (r *Replay) Record(s *state.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.States = append(r.States, s)
}

// Start resets the playback cursor to the beginning.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentIndex = 0
}

// Next returns the snapshot at the cursor and advances it, or nil at the end.
func (r *Replay) Next() *state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentIndex < len(r.States) {
		s := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return s
	}
	return nil
}

// Previous steps the cursor back and returns that snapshot, or nil at the
// beginning.
func (r *Replay) Previous() *state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.States)
}

// StateAt returns the snapshot at index, or nil if out of range.
func (r *Replay) StateAt(index int) *state.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}
