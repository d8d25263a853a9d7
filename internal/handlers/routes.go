package handlers

import "net/http"

// Routes mounts every handler on a fresh mux. The connect route takes
// any method so websocket clients are free to do their handshake.
func Routes(game GameHandler, auth Auth) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /game", game.Create)
	router.HandleFunc("GET /game/{id}", game.Fetch)
	router.HandleFunc("DELETE /game/{id}", game.Delete)
	router.HandleFunc("POST /game/{id}/mark", game.Mark)
	router.HandleFunc("POST /game/{id}/sweep", game.Sweep)
	router.HandleFunc("POST /game/{id}/explore", game.Explore)
	router.HandleFunc("POST /game/{id}/restart", game.Restart)
	router.HandleFunc("GET /game/{id}/cell", game.Cell)
	router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	router.HandleFunc("GET /records", game.Records)

	router.HandleFunc("POST /register", auth.Register)
	router.HandleFunc("POST /login", auth.Login)
	router.HandleFunc("POST /logout", auth.Logout)
	router.HandleFunc("GET /status", auth.Status)

	return router
}
