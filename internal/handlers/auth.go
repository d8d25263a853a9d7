package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fenying/minesweeper-go/internal/config"
	"github.com/fenying/minesweeper-go/internal/middleware"
	"github.com/fenying/minesweeper-go/internal/repository"
)

var (
	ErrBadAuthBody        = errors.New("username and password must not be empty")
	ErrPasswordTooLong    = errors.New("password must not be longer than 72 bytes")
	ErrUsernameTaken      = errors.New("username taken")
	ErrUnknownUsername    = errors.New("unknown username")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Auth serves registration, login and the token cookie lifecycle.
type Auth struct {
	logger  *logrus.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuth(
	logger *logrus.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	jwt *config.JWT,
) Auth {
	return Auth{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		jwt:     jwt,
	}
}

// credentials pulls username/password out of a form body, enforcing
// presence and the bcrypt length ceiling.
func (h Auth) credentials(w http.ResponseWriter, r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return "", "", false
	}
	username = r.PostFormValue("username")
	password = r.PostFormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrBadAuthBody))
		return "", "", false
	}
	if len([]byte(password)) > 72 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrPasswordTooLong))
		return "", "", false
	}
	return username, password, true
}

// signIn mints a fresh token for the player and plants it into cookies.
func (h Auth) signIn(w http.ResponseWriter, playerID int64, username string) bool {
	claims := h.jwt.NewPlayerClaims(playerID, username)
	token, err := h.jwt.Sign(claims)
	if err != nil {
		h.logger.WithError(err).Error("unable to sign auth token")
		w.WriteHeader(http.StatusInternalServerError)
		return false
	}
	if err := h.cookies.Refresh(w, token); err != nil {
		h.logger.WithError(err).Error("unable to set auth cookies")
		w.WriteHeader(http.StatusInternalServerError)
		return false
	}
	return true
}

func (h Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := h.credentials(w, r)
	if !ok {
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.WithError(err).Error("unable to hash password")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	player, err := h.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: passwordHash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(ErrUsernameTaken))
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("unable to create player")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !h.signIn(w, player.PlayerID, player.Username) {
		return
	}
	sendJSONOrLog(w, h.logger, PlayerInfo{
		PlayerID: player.PlayerID,
		Username: player.Username,
	})
}

func (h Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := h.credentials(w, r)
	if !ok {
		return
	}

	player, err := h.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		sendJSONOrLog(w, h.logger, wrapError(ErrUnknownUsername))
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("unable to fetch player")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.logger, wrapError(ErrInvalidCredentials))
		return
	}

	if !h.signIn(w, player.PlayerID, player.Username) {
		return
	}
	sendJSONOrLog(w, h.logger, PlayerInfo{
		PlayerID: player.PlayerID,
		Username: player.Username,
	})
}

func (h Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// PlayerInfo is the public slice of an authenticated player.
type PlayerInfo struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
}

// StatusDTO reports whether the request carried a live token.
type StatusDTO struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

// Status reports auth state. A valid token gets its cookie lifetime
// extended as a side effect; a broken or absent one gets cleared.
func (h Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaimsFrom(r.Context())
	if !ok {
		h.cookies.Clear(w)
		sendJSONOrLog(w, h.logger, StatusDTO{LoggedIn: false})
		return
	}

	if !h.signIn(w, claims.PlayerID, claims.Username) {
		return
	}
	sendJSONOrLog(w, h.logger, StatusDTO{
		LoggedIn: true,
		Player: &PlayerInfo{
			PlayerID: claims.PlayerID,
			Username: claims.Username,
		},
	})
}
