package app

import (
	"net/http"
	"strings"

	"github.com/fenying/minesweeper-go/internal/config"
	"github.com/fenying/minesweeper-go/internal/handlers"
)

// loadRoutes builds the handler set and mounts it under the configured
// base path.
func (a *App) loadRoutes(cookies *config.Cookies, jwt *config.JWT) {
	game := handlers.NewGameHandler(a.logger, a.db, a.keeper, config.NewWebSocket())
	auth := handlers.NewAuth(a.logger, a.db, cookies, jwt)

	var router http.Handler = handlers.Routes(game, auth)
	if base := strings.TrimSuffix(a.config.BasePath, "/"); base != "" {
		router = http.StripPrefix(base, router)
	}
	a.router = router
}
