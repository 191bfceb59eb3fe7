// apps/go-server/internal/httpserver/routes_games.go
//
// HTTP routes for games.
//   - POST /games                     → create a game ({startingTeam?, seed?})
//   - GET  /games                     → every game, redacted
//   - GET  /games/{id}                → state view (?spymaster=true shows card types)
//   - GET  /games/{id}/board/covered  → cards grouped by category, words hidden
//   - POST /games/{id}/clues          → submit a clue ({clue, count, team})
//   - POST /games/{id}/guesses        → guess a card ({team, position})
//   - POST /games/{id}/endturn        → end the guessing turn ({team})

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/robalobadob/codenames/apps/go-server/internal/daily"
	"github.com/robalobadob/codenames/apps/go-server/internal/game"
	"github.com/robalobadob/codenames/apps/go-server/internal/telemetry"
)

type createGameReq struct {
	StartingTeam game.Team `json:"startingTeam"`
	Seed         *int64    `json:"seed"`
}

type clueReq struct {
	Clue  string    `json:"clue"`
	Count *int      `json:"count"`
	Team  game.Team `json:"team"`
}

type guessReq struct {
	Team     game.Team `json:"team"`
	Position *int      `json:"position"`
}

type endTurnReq struct {
	Team game.Team `json:"team"`
}

func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/", s.handleListGames)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Get("/board/covered", s.handleCoveredBoard)
			r.Post("/clues", s.handleSubmitClue)
			r.Post("/guesses", s.handleGuess)
			r.Post("/endturn", s.handleEndTurn)
		})
	})
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "bad_json: "+err.Error())
		return
	}
	seed := req.Seed
	if seed == nil {
		seed = s.cfg.BoardSeed
	}

	g, err := s.createGame(r.Context(), req.StartingTeam, seed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game":    newCreateView(g),
		"covered": newCoveredView(g),
	})
}

// createGame generates and stores a new game inside a span.
func (s *Server) createGame(ctx context.Context, team game.Team, seed *int64) (*game.Game, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "game.create")
	defer span.End()

	g, err := s.svc.CreateNewGame(team, seed)
	if err != nil {
		return nil, recordErr(span, err)
	}
	span.SetAttributes(
		attribute.String("game.id", g.ID()),
		attribute.String("game.starting_team", string(g.StartingTeam())),
		attribute.Bool("game.seeded", seed != nil),
	)
	if err := s.store.Add(ctx, g); err != nil {
		return nil, recordErr(span, err)
	}
	return g, nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]stateView, 0, len(games))
	for _, g := range games {
		out = append(out, newStateView(g, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	spymaster, _ := strconv.ParseBool(r.URL.Query().Get("spymaster"))
	writeJSON(w, http.StatusOK, newStateView(g, spymaster))
}

func (s *Server) handleCoveredBoard(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCoveredView(g))
}

func (s *Server) handleSubmitClue(w http.ResponseWriter, r *http.Request) {
	var req clueReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad_json: "+err.Error())
		return
	}
	if req.Count == nil {
		writeBadRequest(w, "count is required")
		return
	}
	if !req.Team.Valid() {
		writeBadRequest(w, "team is required")
		return
	}

	s.withGame(w, r, "game.clue", req.Team, func(g *game.Game) (any, error) {
		if err := s.svc.SubmitClue(g, req.Team, req.Clue, *req.Count); err != nil {
			return nil, err
		}
		return clueResponse{GameID: g.ID(), Clue: req.Clue, Count: *req.Count, Team: req.Team, Phase: g.Phase()}, nil
	})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad_json: "+err.Error())
		return
	}
	if req.Position == nil {
		writeBadRequest(w, "position is required")
		return
	}
	if !req.Team.Valid() {
		writeBadRequest(w, "team is required")
		return
	}

	s.withGame(w, r, "game.guess", req.Team, func(g *game.Game) (any, error) {
		res, err := s.svc.MakeGuess(g, req.Team, *req.Position)
		if err != nil {
			return nil, err
		}
		return newGuessResponse(g, res), nil
	})
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	var req endTurnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad_json: "+err.Error())
		return
	}
	if !req.Team.Valid() {
		writeBadRequest(w, "team is required")
		return
	}

	s.withGame(w, r, "game.endturn", req.Team, func(g *game.Game) (any, error) {
		if err := s.svc.EndTurn(g, req.Team); err != nil {
			return nil, err
		}
		return newStateView(g, false), nil
	})
}

// withGame runs action on the game named by {id} while holding its lock,
// writes the game back on success and responds with the action's result.
// A finished daily game is recorded only once the store holds the result.
func (s *Server) withGame(w http.ResponseWriter, r *http.Request, spanName string, team game.Team, action func(g *game.Game) (any, error)) {
	id := chi.URLParam(r, "id")
	ctx, span := telemetry.Tracer().Start(r.Context(), spanName, trace.WithAttributes(
		attribute.String("game.id", id),
		attribute.String("game.team", string(team)),
	))
	defer span.End()
	r = r.WithContext(ctx)

	unlock := s.locks.Lock(id)
	defer unlock()

	g, err := s.store.Get(ctx, id)
	if err != nil {
		writeError(w, r, recordErr(span, err))
		return
	}
	out, err := action(g)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("game_id", id).Msg("action rejected")
		writeError(w, r, recordErr(span, err))
		return
	}
	if err := s.store.Update(ctx, g); err != nil {
		writeError(w, r, recordErr(span, err))
		return
	}
	if g.Phase() == game.PhaseComplete {
		s.recordDaily(r, g)
	}
	span.SetAttributes(attribute.String("game.phase", string(g.Phase())))
	writeJSON(w, http.StatusOK, out)
}

// recordDaily stores the result of a finished daily game. Failures are logged
// only; the guess itself already succeeded.
func (s *Server) recordDaily(r *http.Request, g *game.Game) {
	if s.daily == nil {
		return
	}
	date, ok, err := s.daily.IsDaily(r.Context(), g.ID())
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("game_id", g.ID()).Msg("daily lookup")
		return
	}
	if !ok {
		return
	}
	res, done := daily.ResultFor(g, date)
	if !done {
		return
	}
	if err := s.daily.RecordResult(r.Context(), res); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("game_id", g.ID()).Msg("record daily result")
	}
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
