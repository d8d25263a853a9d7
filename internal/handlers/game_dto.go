package handlers

import (
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/fenying/minesweeper-go/internal/mines"
	"github.com/fenying/minesweeper-go/internal/session"
)

var queryDecoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

// CreateGameDTO carries the board parameters of a new game. Width,
// height and mine quantity are required; their values are validated by
// the engine, not here.
type CreateGameDTO struct {
	Width                 int  `schema:"width,required"`
	Height                int  `schema:"height,required"`
	MineQuantity          int  `schema:"mine_quantity,required"`
	ShowMinesOnlyOnFailed bool `schema:"show_mines_only_on_failed"`
}

func ParseCreateGameDTO(src map[string][]string) (dto CreateGameDTO, err error) {
	err = queryDecoder.Decode(&dto, src)
	return dto, err
}

func (dto CreateGameDTO) GameParams() mines.GameParams {
	return mines.GameParams{
		Width:                 dto.Width,
		Height:                dto.Height,
		MineQuantity:          dto.MineQuantity,
		ShowMinesOnlyOnFailed: dto.ShowMinesOnlyOnFailed,
	}
}

// PositionDTO addresses a single cell in query-string form.
type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePositionDTO(src map[string][]string) (dto PositionDTO, err error) {
	err = queryDecoder.Decode(&dto, src)
	return dto, err
}

// MarkDTO addresses a cell together with the mark style to put on it.
type MarkDTO struct {
	X     int    `schema:"x,required"`
	Y     int    `schema:"y,required"`
	Style string `schema:"style,required"`
}

func ParseMarkDTO(src map[string][]string) (dto MarkDTO, err error) {
	err = queryDecoder.Decode(&dto, src)
	return dto, err
}

// GameDTO is the wire form of a game session. Timestamps are Unix
// milliseconds; EndedAt is absent while the round is still going.
type GameDTO struct {
	SessionID        string     `json:"session_id"`
	Grid             mines.Grid `json:"grid"`
	Width            int        `json:"width"`
	Height           int        `json:"height"`
	MineQuantity     int        `json:"mine_quantity"`
	RestMineQuantity int        `json:"rest_mine_quantity"`
	Status           string     `json:"status"`
	StartedAt        int64      `json:"started_at"`
	UsedTimeMs       int64      `json:"used_time_ms"`
	EndedAt          *int64     `json:"ended_at,omitempty"`
}

func NewGameDTO(sessionID uuid.UUID, snap session.Snapshot) *GameDTO {
	dto := &GameDTO{
		SessionID:        sessionID.String(),
		Grid:             snap.Grid,
		Width:            snap.Params.Width,
		Height:           snap.Params.Height,
		MineQuantity:     snap.Params.MineQuantity,
		RestMineQuantity: snap.RestMineQuantity,
		Status:           snap.Status.String(),
		StartedAt:        snap.StartedAt.UnixMilli(),
		UsedTimeMs:       snap.UsedTime.Milliseconds(),
	}
	if !snap.EndedAt.IsZero() {
		endedAt := snap.EndedAt.UnixMilli()
		dto.EndedAt = &endedAt
	}
	return dto
}

// MarkResultDTO is a GameDTO plus whether the requested mark actually
// went through. Marks on revealed cells or on a finished board are
// refused without being an error.
type MarkResultDTO struct {
	Accepted bool `json:"accepted"`
	*GameDTO
}

// CellDTO is the wire form of a single cell probe.
type CellDTO struct {
	X     int             `json:"x"`
	Y     int             `json:"y"`
	State mines.CellState `json:"state"`
}
