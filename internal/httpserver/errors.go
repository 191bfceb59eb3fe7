package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
	"github.com/robalobadob/codenames/apps/go-server/internal/store"
)

// statusFor maps an error from the game core or the store to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidPhase),
		errors.Is(err, game.ErrTeamMismatch),
		errors.Is(err, game.ErrClueValidation),
		errors.Is(err, game.ErrInvalidGuess),
		errors.Is(err, game.ErrInvalidTeam):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError responds with {"error": msg}. Server-side failures are logged
// and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusNotFound:
		msg = "not_found"
	case http.StatusInternalServerError:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = "internal_error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
