package session

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenying/minesweeper-go/internal/mines"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newGame(t *testing.T, clock quartz.Clock, params mines.GameParams) *mines.Game {
	t.Helper()
	g, err := mines.NewGame(params,
		mines.WithRand(rand.New(rand.NewPCG(1, 2))),
		mines.WithClock(clock),
	)
	require.NoError(t, err)
	return g
}

func TestSessionDoStampsEndedAt(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	k := NewKeeper(time.Hour, WithClock(clock), WithLogger(testLogger()))

	// three cells, two mines: the very first sweep either explodes or
	// reveals the only safe cell and wins, so the round always ends
	g := newGame(t, clock, mines.GameParams{Width: 1, Height: 3, MineQuantity: 2})
	s := k.Create(g, &Owner{PlayerID: 7, Username: "kaito"})

	snap := s.Snapshot()
	assert.True(t, snap.EndedAt.IsZero())
	assert.Equal(t, mines.Playing, snap.Status)

	clock.Advance(5 * time.Second)
	snap = s.Do(func(g *mines.Game) { g.Sweep(0, 0) })
	require.NotEqual(t, mines.Playing, snap.Status)
	assert.True(t, snap.EndedAt.Equal(clock.Now()))
	assert.Equal(t, 5*time.Second, snap.UsedTime)

	// poking the dead board must not move the end stamp
	endedAt := snap.EndedAt
	clock.Advance(3 * time.Second)
	snap = s.Do(func(g *mines.Game) { g.Sweep(0, 1) })
	assert.True(t, snap.EndedAt.Equal(endedAt))

	// a restart brings the session back to life
	snap = s.Do(func(g *mines.Game) { g.Restart() })
	assert.Equal(t, mines.Playing, snap.Status)
	assert.True(t, snap.EndedAt.IsZero())
	assert.Equal(t, time.Duration(0), snap.UsedTime)
}

func TestSessionSnapshotIsolation(t *testing.T) {
	t.Parallel()

	k := NewKeeper(time.Hour, WithLogger(testLogger()))
	g := newGame(t, quartz.NewReal(), mines.GameParams{Width: 9, Height: 9, MineQuantity: 10})
	s := k.Create(g, nil)

	snap := s.Snapshot()
	snap.Grid[0][0] = mines.ExplodedMine

	assert.Equal(t, mines.Hidden, s.Snapshot().Grid[0][0])
}

func TestSessionOwnership(t *testing.T) {
	t.Parallel()

	k := NewKeeper(time.Hour, WithLogger(testLogger()))
	g := newGame(t, quartz.NewReal(), mines.GameParams{Width: 9, Height: 9, MineQuantity: 10})

	anon := k.Create(g, nil)
	assert.Nil(t, anon.Owner)

	g2 := newGame(t, quartz.NewReal(), mines.GameParams{Width: 9, Height: 9, MineQuantity: 10})
	owned := k.Create(g2, &Owner{PlayerID: 42, Username: "miyu"})
	require.NotNil(t, owned.Owner)
	assert.Equal(t, int64(42), owned.Owner.PlayerID)
	assert.Equal(t, "miyu", owned.Owner.Username)

	assert.NotEqual(t, anon.ID, owned.ID)
}

func TestSessionDoReturnsFreshView(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	k := NewKeeper(time.Hour, WithClock(clock), WithLogger(testLogger()))
	g := newGame(t, clock, mines.GameParams{Width: 9, Height: 9, MineQuantity: 10})
	s := k.Create(g, nil)

	snap := s.Do(func(g *mines.Game) {
		require.True(t, g.Mark(3, 3, mines.MarkMine))
		require.True(t, g.Mark(4, 4, mines.MarkQuestion))
	})
	assert.Equal(t, mines.Flagged, snap.Grid[3][3])
	assert.Equal(t, mines.Questioned, snap.Grid[4][4])
	assert.Equal(t, 9, snap.RestMineQuantity)
	assert.Equal(t, 10, snap.Params.MineQuantity)
}
