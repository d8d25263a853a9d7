// Package handlers wires the minesweeper engine, session keeper and
// player repository into net/http handler funcs. Handlers parse query
// strings with gorilla/schema, reply in JSON and never panic on bad
// input: invalid requests get a 4xx with an {"error": ...} body.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func sendJSONOrLog(w http.ResponseWriter, logger *logrus.Logger, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.WithError(err).Error("unable to marshal response payload")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		logger.WithError(err).Error("unable to write response payload")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
