package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocket wraps the upgrader shared by the live-play handlers. Origin
// checks are left to the CORS middleware in front of it.
type WebSocket struct {
	Upgrader websocket.Upgrader
}

func NewWebSocket() *WebSocket {
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}
