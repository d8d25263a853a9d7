package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/fenying/minesweeper-go/internal/mines"
)

func TestHighscoreFilterWhereClause(t *testing.T) {
	t.Parallel()

	username := "sora"
	params := &mines.GameParams{Width: 9, Height: 9, MineQuantity: 10}

	tests := []struct {
		name       string
		filter     HighscoreFilter
		wantClause string
		wantArgs   pgx.NamedArgs
	}{
		{
			name:       "empty",
			filter:     HighscoreFilter{},
			wantClause: "",
			wantArgs:   pgx.NamedArgs{},
		},
		{
			name:       "username only",
			filter:     HighscoreFilter{Username: &username},
			wantClause: "username = @username",
			wantArgs:   pgx.NamedArgs{"username": "sora"},
		},
		{
			name:       "params only",
			filter:     HighscoreFilter{GameParams: params},
			wantClause: "width = @width AND height = @height AND mine_quantity = @mineQuantity",
			wantArgs: pgx.NamedArgs{
				"width":        9,
				"height":       9,
				"mineQuantity": 10,
			},
		},
		{
			name:       "username and params",
			filter:     HighscoreFilter{Username: &username, GameParams: params},
			wantClause: "username = @username AND width = @width AND height = @height AND mine_quantity = @mineQuantity",
			wantArgs: pgx.NamedArgs{
				"username":     "sora",
				"width":        9,
				"height":       9,
				"mineQuantity": 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clause, args := tt.filter.WhereClause()
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
