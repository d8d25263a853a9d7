package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerGridIsolation(t *testing.T) {
	t.Parallel()

	g := newTestGame(t,
		GameParams{Width: 3, Height: 3, MineQuantity: 2},
		point{2, 1}, point{2, 2},
	)

	snapshot := g.PlayerGrid()
	snapshot[0][0] = ExplodedMine
	snapshot[2] = nil

	got, err := g.CellAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Hidden, got, "writes to a snapshot must not reach the game")
	assert.Equal(t, Hidden, g.PlayerGrid()[2][2])
}

func TestCellAt(t *testing.T) {
	t.Parallel()

	g := newTestGame(t,
		GameParams{Width: 3, Height: 3, MineQuantity: 2},
		point{2, 1}, point{2, 2},
	)
	require.True(t, g.Mark(1, 1, MarkQuestion))

	got, err := g.CellAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Questioned, got)

	for _, p := range []point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {-4, -4}} {
		_, err := g.CellAt(p.x, p.y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "cell (%d, %d)", p.x, p.y)
	}
}

func TestGridClone(t *testing.T) {
	t.Parallel()

	orig := Grid{
		{Hidden, 1, Flagged},
		{Questioned, 0, 8},
	}
	clone := orig.Clone()
	clone[0][0] = ExplodedMine
	clone[1] = nil

	assert.Equal(t, Hidden, orig[0][0])
	assert.Equal(t, CellState(8), orig[1][2])
}

func TestGridString(t *testing.T) {
	t.Parallel()

	g := Grid{
		{Hidden, 1, Flagged},
		{Questioned, 0, ExplodedMine},
	}
	assert.Equal(t, ". 1 F\n? 0 @", g.String())
}

func TestCellStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "?", Questioned.String())
	assert.Equal(t, ".", Hidden.String())
	assert.Equal(t, "F", Flagged.String())
	assert.Equal(t, "0", CellState(0).String())
	assert.Equal(t, "8", CellState(8).String())
	assert.Equal(t, "@", ExplodedMine.String())
	assert.Equal(t, "X", WrongFlag.String())
	assert.Equal(t, "*", RevealedMine.String())
	assert.Equal(t, "!", CellState(42).String())
}

func TestParseMarkStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want MarkStyle
	}{
		{"none", MarkNone},
		{"n", MarkNone},
		{"mine", MarkMine},
		{"m", MarkMine},
		{"flag", MarkMine},
		{"f", MarkMine},
		{"question", MarkQuestion},
		{"q", MarkQuestion},
	}
	for _, tt := range tests {
		got, err := ParseMarkStyle(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMarkStyle("banana")
	assert.Error(t, err)
	_, err = ParseMarkStyle("")
	assert.Error(t, err)
}

func TestGameStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.Equal(t, "invalid", GameStatus(9).String())
}
