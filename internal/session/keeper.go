package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fenying/minesweeper-go/internal/mines"
)

// Keeper is the in-memory session registry. A background sweep drops
// sessions that have sat idle for longer than the ttl.
type Keeper struct {
	ttl   time.Duration
	clock quartz.Clock
	log   *logrus.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

type KeeperOption func(*Keeper)

// WithClock substitutes the wall clock, for tests.
func WithClock(clock quartz.Clock) KeeperOption {
	return func(k *Keeper) { k.clock = clock }
}

func WithLogger(log *logrus.Logger) KeeperOption {
	return func(k *Keeper) { k.log = log }
}

// NewKeeper builds an empty registry whose sessions expire after ttl of
// inactivity. ttl must be positive.
func NewKeeper(ttl time.Duration, opts ...KeeperOption) *Keeper {
	k := &Keeper{
		ttl:      ttl,
		clock:    quartz.NewReal(),
		log:      logrus.StandardLogger(),
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Create registers a new session around g. owner may be nil for an
// anonymous game.
func (k *Keeper) Create(g *mines.Game, owner *Owner) *Session {
	now := k.clock.Now()
	s := &Session{
		ID:        uuid.New(),
		Owner:     owner,
		CreatedAt: now,
		clock:     k.clock,
		game:      g,
		updatedAt: now,
	}
	k.mu.Lock()
	k.sessions[s.ID] = s
	k.mu.Unlock()
	return s
}

// Get looks a session up by id. Finished sessions stay retrievable
// until they are deleted or pruned.
func (k *Keeper) Get(id uuid.UUID) (*Session, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete drops a session without checking if it existed.
func (k *Keeper) Delete(id uuid.UUID) {
	k.mu.Lock()
	delete(k.sessions, id)
	k.mu.Unlock()
}

// Count reports the number of live sessions.
func (k *Keeper) Count() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.sessions)
}

// PruneStale drops every session idle for longer than the ttl and
// reports how many went.
func (k *Keeper) PruneStale() int {
	deadline := k.clock.Now().Add(-k.ttl)
	k.mu.Lock()
	defer k.mu.Unlock()
	pruned := 0
	for id, s := range k.sessions {
		if s.touchedAt().Before(deadline) {
			delete(k.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Run sweeps for stale sessions once per ttl until ctx is canceled, so
// an untouched session lives for at least ttl and at most twice that.
func (k *Keeper) Run(ctx context.Context) error {
	waiter := k.clock.TickerFunc(ctx, k.ttl, func() error {
		if n := k.PruneStale(); n > 0 {
			k.log.WithField("sessions", n).Debug("pruned stale game sessions")
		}
		return nil
	}, "session-keeper")
	if err := waiter.Wait(); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
