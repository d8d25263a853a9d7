package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fenying/minesweeper-go/internal/mines"
)

// ConnectWS upgrades the request and plays the session over a text
// protocol: each message is a batch of newline-separated commands (see
// commandNargs), applied atomically, answered with the full board as
// JSON. A bad command gets an {"error": ...} reply instead and leaves
// the connection open; commands before it still count.
func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	log := h.logger.WithField("session_id", s.ID)
	log.Debug("websocket connected")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("websocket closed abnormally")
			}
			break
		}
		if mt != websocket.TextMessage {
			log.Warn("dropping connection: binary frame on text protocol")
			break
		}

		var (
			cmdErr error
			won    bool
		)
		snap := s.Do(func(g *mines.Game) {
			for piece := range pieces(string(message), "\n") {
				before := g.Status()
				if cmdErr = executeCommand(g, piece); cmdErr != nil {
					return
				}
				if before == mines.Playing && g.Status() == mines.Won {
					won = true
				}
			}
		})

		if cmdErr != nil {
			if err := c.WriteJSON(wrapError(cmdErr)); err != nil {
				log.WithError(err).Warn("unable to write error reply")
				break
			}
			continue
		}

		if won && s.Owner != nil {
			h.submitRecord(r.Context(), s, snap)
		}

		if err := c.WriteJSON(NewGameDTO(s.ID, snap)); err != nil {
			log.WithError(err).Warn("unable to write board reply")
			break
		}
	}

	log.Debug("websocket disconnected")
}
