// Package session keeps live games in memory, one lock-guarded entry
// per board, and sweeps out entries nobody has touched for a while.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/fenying/minesweeper-go/internal/mines"
)

// ErrNotFound is returned when a session id does not resolve to a live
// session, either because it never existed or because it was pruned.
var ErrNotFound = errors.New("game session not found")

// Owner ties a session to a registered player. Sessions created without
// an owner are anonymous: fully playable, but their results are never
// recorded.
type Owner struct {
	PlayerID int64
	Username string
}

// Session is a single live game plus the synchronization around it.
// Every read and write of the underlying game goes through Do or
// Snapshot; the game pointer itself never leaves the lock.
type Session struct {
	ID        uuid.UUID
	Owner     *Owner
	CreatedAt time.Time

	clock quartz.Clock

	mu        sync.RWMutex
	game      *mines.Game
	updatedAt time.Time
	endedAt   time.Time
}

// Snapshot is a point-in-time view of a session's game, safe to keep
// after the session lock is released.
type Snapshot struct {
	Grid             mines.Grid
	Status           mines.GameStatus
	Params           mines.GameParams
	RestMineQuantity int
	StartedAt        time.Time
	UsedTime         time.Duration
	EndedAt          time.Time // zero while the round is running
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Grid:             s.game.PlayerGrid(),
		Status:           s.game.Status(),
		Params:           s.game.Params(),
		RestMineQuantity: s.game.RestMineQuantity(),
		StartedAt:        s.game.StartedAt(),
		UsedTime:         s.game.UsedTime(),
		EndedAt:          s.endedAt,
	}
	// A finished round stops the clock.
	if !s.endedAt.IsZero() {
		snap.UsedTime = s.endedAt.Sub(snap.StartedAt)
	}
	return snap
}

// Snapshot returns the current view without running any action.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Do runs fn with exclusive access to the session's game and returns
// the view from right after fn finished. The access time is recorded
// for staleness tracking, and the moment a round leaves Playing its end
// time is stamped once; a restart clears it again.
func (s *Session) Do(fn func(g *mines.Game)) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
	s.updatedAt = s.clock.Now()
	switch {
	case s.game.Status() == mines.Playing:
		s.endedAt = time.Time{}
	case s.endedAt.IsZero():
		s.endedAt = s.updatedAt
	}
	return s.snapshotLocked()
}

func (s *Session) touchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
