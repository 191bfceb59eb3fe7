// apps/go-server/internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new     → start a game on today's shared board
//   - GET  /daily/results → summary of finished daily games for today (or ?date=)
//
// Every daily game of a UTC date is dealt the same board (seed from
// date + DAILY_SALT). Results are recorded when a registered game ends
// (see recordDaily in routes_games.go).

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/codenames/apps/go-server/internal/daily"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/results", s.handleDailyResults)
	})
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "bad_json: "+err.Error())
		return
	}

	now := s.now()
	date := daily.DateKey(now)
	seed := daily.Seed(now, s.cfg.DailySalt)

	g, err := s.createGame(r.Context(), req.StartingTeam, &seed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.daily.Register(r.Context(), g.ID(), date); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":    date,
		"game":    newCreateView(g),
		"covered": newCoveredView(g),
	})
}

func (s *Server) handleDailyResults(w http.ResponseWriter, r *http.Request) {
	date := daily.DateKey(s.now())
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := daily.ParseDateKey(q)
		if err != nil {
			writeBadRequest(w, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	sum, err := s.daily.Summary(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
