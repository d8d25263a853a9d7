package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fenying/minesweeper-go/internal/mines"
)

// GameRecord is one finished, won game. Only games played by a
// registered player are recorded.
type GameRecord struct {
	GameRecordID int64
	PlayerID     int64
	Width        int
	Height       int
	MineQuantity int
	PlaytimeMs   int64
	WonAt        pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
}

type CreateGameRecordParams struct {
	PlayerID     int64
	Width        int
	Height       int
	MineQuantity int
	Playtime     time.Duration
	WonAt        time.Time
}

func (q *Queries) CreateGameRecord(
	ctx context.Context, params CreateGameRecordParams,
) (*GameRecord, error) {
	args := pgx.NamedArgs{
		"player_id":     params.PlayerID,
		"width":         params.Width,
		"height":        params.Height,
		"mine_quantity": params.MineQuantity,
		"playtime_ms":   params.Playtime.Milliseconds(),
		"won_at":        params.WonAt,
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			player_id, width, height, mine_quantity, playtime_ms, won_at
		)
		VALUES (
			@player_id, @width, @height, @mine_quantity, @playtime_ms, @won_at
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameRecord],
	)
}

// Highscore is the leaderboard projection of a game record.
type Highscore struct {
	GameRecordID int64     `json:"game_record_id"`
	Username     string    `json:"username"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	MineQuantity int       `json:"mine_quantity"`
	PlaytimeMs   int64     `json:"playtime_ms"`
	WonAt        time.Time `json:"won_at"`
}

type HighscoreFilter struct {
	Username   *string
	GameParams *mines.GameParams
}

// WhereClause renders the filter as SQL. Only the board dimensions of
// GameParams participate; the display options do not affect records.
func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_quantity = @mineQuantity",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mineQuantity"] = f.GameParams.MineQuantity
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_record_id,
		username,
		width,
		height,
		mine_quantity,
		playtime_ms,
		won_at
	FROM game_record
		JOIN player USING (player_id)`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
