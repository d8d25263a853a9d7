package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fenying/minesweeper-go/internal/config"
	"github.com/fenying/minesweeper-go/internal/middleware"
	"github.com/fenying/minesweeper-go/internal/mines"
	"github.com/fenying/minesweeper-go/internal/repository"
	"github.com/fenying/minesweeper-go/internal/session"
)

// GameHandler serves everything under /game. It owns no game state
// itself: boards live in the keeper, finished wins go to the
// repository.
type GameHandler struct {
	logger   *logrus.Logger
	repo     *repository.Queries
	keeper   *session.Keeper
	ws       *config.WebSocket
	gameOpts []mines.GameOption
}

func NewGameHandler(
	logger *logrus.Logger,
	db *pgxpool.Pool,
	keeper *session.Keeper,
	ws *config.WebSocket,
	gameOpts ...mines.GameOption,
) GameHandler {
	return GameHandler{
		logger:   logger,
		repo:     repository.New(db),
		keeper:   keeper,
		ws:       ws,
		gameOpts: gameOpts,
	}
}

// session resolves the {id} path value to a live session, writing the
// appropriate error response when it cannot.
func (h GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return nil, false
	}
	s, err := h.keeper.Get(sessionID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return nil, false
	}
	return s, true
}

// ownerOf extracts session ownership from auth claims, if any.
func ownerOf(r *http.Request) *session.Owner {
	claims, ok := middleware.PlayerClaimsFrom(r.Context())
	if !ok {
		return nil
	}
	return &session.Owner{
		PlayerID: claims.PlayerID,
		Username: claims.Username,
	}
}

// submitRecord stores a won round for the session's owner. Failure to
// store is logged and swallowed: the player still gets their board
// back.
func (h GameHandler) submitRecord(ctx context.Context, s *session.Session, snap session.Snapshot) {
	_, err := h.repo.CreateGameRecord(ctx, repository.CreateGameRecordParams{
		PlayerID:     s.Owner.PlayerID,
		Width:        snap.Params.Width,
		Height:       snap.Params.Height,
		MineQuantity: snap.Params.MineQuantity,
		Playtime:     snap.UsedTime,
		WonAt:        snap.EndedAt,
	})
	if err != nil {
		h.logger.WithError(err).
			WithField("player_id", s.Owner.PlayerID).
			Error("unable to record win")
	}
}

func (h GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	game, err := mines.NewGame(dto.GameParams(), h.gameOpts...)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	s := h.keeper.Create(game, ownerOf(r))
	sendJSONOrLog(w, h.logger, NewGameDTO(s.ID, s.Snapshot()))
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewGameDTO(s.ID, s.Snapshot()))
}

func (h GameHandler) Mark(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	dto, err := ParseMarkDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	style, err := mines.ParseMarkStyle(dto.Style)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	var (
		accepted bool
		before   mines.GameStatus
	)
	snap := s.Do(func(g *mines.Game) {
		before = g.Status()
		accepted = g.Mark(dto.X, dto.Y, style)
	})
	// Flagging the last hidden safe layout can finish the round.
	if before == mines.Playing && snap.Status == mines.Won && s.Owner != nil {
		h.submitRecord(r.Context(), s, snap)
	}

	sendJSONOrLog(w, h.logger, MarkResultDTO{
		Accepted: accepted,
		GameDTO:  NewGameDTO(s.ID, snap),
	})
}

func (h GameHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(g *mines.Game, x, y int) { g.Sweep(x, y) })
}

func (h GameHandler) Explore(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(g *mines.Game, x, y int) { g.Explore(x, y) })
}

// move is the shared shape of Sweep and Explore: resolve session, parse
// x/y, run the move, persist a fresh win, reply with the board.
func (h GameHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	apply func(g *mines.Game, x, y int),
) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	dto, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	var before mines.GameStatus
	snap := s.Do(func(g *mines.Game) {
		before = g.Status()
		apply(g, dto.X, dto.Y)
	})
	if before == mines.Playing && snap.Status == mines.Won && s.Owner != nil {
		h.submitRecord(r.Context(), s, snap)
	}

	sendJSONOrLog(w, h.logger, NewGameDTO(s.ID, snap))
}

func (h GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap := s.Do(func(g *mines.Game) { g.Restart() })
	sendJSONOrLog(w, h.logger, NewGameDTO(s.ID, snap))
}

func (h GameHandler) Cell(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	dto, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	var (
		state   mines.CellState
		cellErr error
	)
	s.Do(func(g *mines.Game) {
		state, cellErr = g.CellAt(dto.X, dto.Y)
	})
	if cellErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(cellErr))
		return
	}

	sendJSONOrLog(w, h.logger, CellDTO{X: dto.X, Y: dto.Y, State: state})
}

func (h GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.keeper.Delete(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// recordsQueryDTO narrows the highscore listing. Board filtering only
// kicks in when all three dimensions are given.
type recordsQueryDTO struct {
	Username     *string `schema:"username"`
	Width        *int    `schema:"width"`
	Height       *int    `schema:"height"`
	MineQuantity *int    `schema:"mine_quantity"`
}

func (h GameHandler) Records(w http.ResponseWriter, r *http.Request) {
	var dto recordsQueryDTO
	if err := queryDecoder.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	filter := repository.HighscoreFilter{Username: dto.Username}
	if dto.Width != nil && dto.Height != nil && dto.MineQuantity != nil {
		filter.GameParams = &mines.GameParams{
			Width:        *dto.Width,
			Height:       *dto.Height,
			MineQuantity: *dto.MineQuantity,
		}
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("unable to fetch highscores")
		w.WriteHeader(http.StatusInternalServerError)
		sendJSONOrLog(w, h.logger, wrapError(errors.New("unable to fetch highscores")))
		return
	}

	sendJSONOrLog(w, h.logger, highscores)
}
