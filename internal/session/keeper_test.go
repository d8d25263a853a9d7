package session

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenying/minesweeper-go/internal/mines"
)

func TestKeeperGetDelete(t *testing.T) {
	t.Parallel()

	k := NewKeeper(time.Hour, WithLogger(testLogger()))
	g := newGame(t, quartz.NewReal(), mines.GameParams{Width: 9, Height: 9, MineQuantity: 10})
	s := k.Create(g, nil)
	require.Equal(t, 1, k.Count())

	got, err := k.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = k.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	k.Delete(s.ID)
	assert.Equal(t, 0, k.Count())
	_, err = k.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	k.Delete(s.ID) // deleting twice is fine
}

func TestKeeperPruneStale(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	k := NewKeeper(time.Hour, WithClock(clock), WithLogger(testLogger()))

	stale := k.Create(newGame(t, clock, mines.GameParams{Width: 9, Height: 9, MineQuantity: 10}), nil)
	live := k.Create(newGame(t, clock, mines.GameParams{Width: 9, Height: 9, MineQuantity: 10}), nil)

	clock.Advance(30 * time.Minute)
	live.Do(func(g *mines.Game) {}) // a touch is enough to stay alive
	clock.Advance(31 * time.Minute)

	assert.Equal(t, 1, k.PruneStale())
	assert.Equal(t, 1, k.Count())

	_, err := k.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = k.Get(live.ID)
	assert.NoError(t, err)

	assert.Equal(t, 0, k.PruneStale(), "second sweep finds nothing new")
}

func TestKeeperRunPrunes(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	k := NewKeeper(time.Hour, WithClock(clock), WithLogger(testLogger()))
	s := k.Create(newGame(t, clock, mines.GameParams{Width: 9, Height: 9, MineQuantity: 10}), nil)

	trap := clock.Trap().TickerFunc("session-keeper")
	defer trap.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- k.Run(ctx) }()

	call, err := trap.Wait(ctx)
	require.NoError(t, err)
	call.MustRelease(ctx)

	// first sweep: the session is exactly ttl old, not yet stale
	clock.Advance(time.Hour).MustWait(ctx)
	assert.Equal(t, 1, k.Count())

	// second sweep: now it is
	clock.Advance(time.Hour).MustWait(ctx)
	assert.Equal(t, 0, k.Count())
	_, err = k.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	cancel()
	require.NoError(t, <-done)
}
