package handlers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenying/minesweeper-go/internal/mines"
)

func newBoard(t *testing.T, width, height, mineQuantity int) *mines.Game {
	t.Helper()
	g, err := mines.NewGame(
		mines.GameParams{Width: width, Height: height, MineQuantity: mineQuantity},
		mines.WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	require.NoError(t, err)
	return g
}

func cellAt(t *testing.T, g *mines.Game, x, y int) mines.CellState {
	t.Helper()
	state, err := g.CellAt(x, y)
	require.NoError(t, err)
	return state
}

func TestExecuteCommandMark(t *testing.T) {
	t.Parallel()
	g := newBoard(t, 9, 9, 10)

	require.NoError(t, executeCommand(g, "m 0 0 mine"))
	assert.Equal(t, mines.Flagged, cellAt(t, g, 0, 0))
	assert.Equal(t, 9, g.RestMineQuantity())

	require.NoError(t, executeCommand(g, "m 0 0 question"))
	assert.Equal(t, mines.Questioned, cellAt(t, g, 0, 0))
	assert.Equal(t, 10, g.RestMineQuantity())

	require.NoError(t, executeCommand(g, "m 0 0 none"))
	assert.Equal(t, mines.Hidden, cellAt(t, g, 0, 0))
}

func TestExecuteCommandSweepRestartGet(t *testing.T) {
	t.Parallel()
	// Two mines on three cells: the first sweep always ends the round.
	g := newBoard(t, 1, 3, 2)

	require.NoError(t, executeCommand(g, "s 0 0"))
	assert.NotEqual(t, mines.Playing, g.Status())

	require.NoError(t, executeCommand(g, "g"))
	assert.NotEqual(t, mines.Playing, g.Status())

	require.NoError(t, executeCommand(g, "r"))
	assert.Equal(t, mines.Playing, g.Status())
}

func TestExecuteCommandExplore(t *testing.T) {
	t.Parallel()
	g := newBoard(t, 9, 9, 10)

	// Exploring a cell that was never revealed is a no-op.
	require.NoError(t, executeCommand(g, "e 4 4"))
	assert.Equal(t, mines.Playing, g.Status())
	assert.Equal(t, mines.Hidden, cellAt(t, g, 4, 4))
}

func TestExecuteCommandBlankLine(t *testing.T) {
	t.Parallel()
	g := newBoard(t, 9, 9, 10)

	require.NoError(t, executeCommand(g, ""))
	require.NoError(t, executeCommand(g, "   "))
}

func TestExecuteCommandErrors(t *testing.T) {
	t.Parallel()
	g := newBoard(t, 9, 9, 10)

	tests := []struct {
		name    string
		command string
		wantErr error
	}{
		{"unknown word", "z 1 2", ErrUnknownCommand},
		{"sweep missing arg", "s 1", ErrBadArgCount},
		{"sweep extra arg", "s 1 2 3", ErrBadArgCount},
		{"restart with args", "r 1", ErrBadArgCount},
		{"mark missing style", "m 1 2", ErrBadArgCount},
		{"x not a number", "s a 2", nil},
		{"y not a number", "s 1 b", nil},
		{"bad mark style", "m 0 0 banana", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := executeCommand(g, test.command)
			require.Error(t, err)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}

	// A failed command must leave the board untouched.
	assert.Equal(t, mines.Playing, g.Status())
	assert.Equal(t, 10, g.RestMineQuantity())
}
