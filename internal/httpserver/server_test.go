package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/apps/go-server/internal/config"
	"github.com/robalobadob/codenames/apps/go-server/internal/daily"
	"github.com/robalobadob/codenames/apps/go-server/internal/game"
	"github.com/robalobadob/codenames/apps/go-server/internal/store"
	"github.com/robalobadob/codenames/apps/go-server/internal/words"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	return config.Config{
		ClientOrigin:   "http://localhost:5173",
		StartingTeam:   game.Red,
		ClueRules:      "basic",
		StoreDriver:    config.DriverMemory,
		DailySalt:      "test_salt",
		RequestTimeout: 5 * time.Second,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithStore(t, store.NewMemoryStore())
}

func newTestServerWithStore(t *testing.T, st store.Store) *Server {
	t.Helper()
	list, err := words.Default()
	require.NoError(t, err)
	gen, err := game.NewBoardGenerator(list)
	require.NoError(t, err)
	svc, err := game.NewService(gen)
	require.NoError(t, err)

	db, err := store.OpenDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(testConfig(), Deps{
		Service: svc,
		Store:   st,
		Daily:   daily.NewStore(db),
		Words:   list,
		Logger:  zerolog.Nop(),
		Now:     func() time.Time { return fixedNow },
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type createResp struct {
	Game    createView  `json:"game"`
	Covered coveredView `json:"covered"`
}

func createGame(t *testing.T, s *Server, body string) createResp {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/games", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[createResp](t, rec)
}

// spymasterBoard returns the full board of a game via the spymaster view.
func spymasterBoard(t *testing.T, s *Server, id string) []cardView {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/games/"+id+"?spymaster=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[stateView](t, rec).Board
}

func positionOf(t *testing.T, board []cardView, ct game.CardType) int {
	t.Helper()
	for _, c := range board {
		if c.Type != nil && *c.Type == ct && !c.Revealed {
			return c.Position
		}
	}
	t.Fatalf("no unrevealed %s", ct)
	return -1
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/games", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDebugWords(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/debug/words", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]int](t, rec)
	assert.GreaterOrEqual(t, got["words"], game.BoardSize)
}

func TestCreateGameIsRedacted(t *testing.T) {
	s := newTestServer(t)
	resp := createGame(t, s, `{"startingTeam":"blue","seed":100}`)

	assert.NotEmpty(t, resp.Game.GameID)
	assert.Equal(t, game.Blue, resp.Game.StartingTeam)
	assert.Equal(t, game.PhaseAwaitingClue, resp.Game.Phase)
	assert.Equal(t, 9, resp.Game.BlueAgentsRemaining)
	assert.Nil(t, resp.Game.Winner)
	require.Len(t, resp.Game.Board, game.BoardSize)
	for _, c := range resp.Game.Board {
		assert.NotEmpty(t, c.Word)
		assert.Nil(t, c.Type)
	}

	require.Len(t, resp.Covered.Groups, 4)
	sizes := map[string]int{}
	for _, grp := range resp.Covered.Groups {
		sizes[grp.Category] = len(grp.Cards)
		for _, c := range grp.Cards {
			assert.Nil(t, c.Word)
		}
	}
	assert.Equal(t, map[string]int{"Red": 8, "Blue": 9, "Neutral": 7, "Assassin": 1}, sizes)
	assert.Equal(t, "Red", resp.Covered.Groups[0].Category)
}

func TestCreateGameDefaults(t *testing.T) {
	s := newTestServer(t)
	resp := createGame(t, s, "")
	assert.Equal(t, game.Red, resp.Game.StartingTeam)
}

func TestCreateGameSameSeedSameWords(t *testing.T) {
	s := newTestServer(t)
	a := createGame(t, s, `{"seed":7}`)
	b := createGame(t, s, `{"seed":7}`)
	assert.NotEqual(t, a.Game.GameID, b.Game.GameID)
	assert.Equal(t, a.Game.Board, b.Game.Board)
}

func TestCreateGameBadInput(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/games", `{"startingTeam":"green"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPost, "/games", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/games/nope", "/games/nope/board/covered"} {
		rec := do(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
	}
	rec := do(t, s, http.MethodPost, "/games/nope/endturn", `{"team":"Red"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSpymasterView(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"seed":3}`).Game.GameID

	for _, c := range spymasterBoard(t, s, id) {
		assert.NotNil(t, c.Type)
	}
	rec := do(t, s, http.MethodGet, "/games/"+id, "")
	for _, c := range decode[stateView](t, rec).Board {
		assert.Nil(t, c.Type)
	}
}

func TestPlayThroughHTTP(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"startingTeam":"Red","seed":100}`).Game.GameID
	board := spymasterBoard(t, s, id)

	rec := do(t, s, http.MethodPost, "/games/"+id+"/clues", `{"clue":"QWXZ","count":2,"team":"Red"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	clue := decode[clueResponse](t, rec)
	assert.Equal(t, game.PhaseAwaitingGuesses, clue.Phase)

	// Wrong team.
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Blue","position":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "current team is Red")

	red := positionOf(t, board, game.RedAgent)
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Red","position":`+strconv.Itoa(red)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	guess := decode[guessResponse](t, rec)
	assert.Equal(t, game.OutcomeFriendlyAgent, guess.Outcome)
	assert.False(t, guess.TurnEnded)
	assert.Equal(t, 8, guess.RedAgentsRemaining)
	assert.Equal(t, 1, guess.CurrentClueGuesses)
	assert.Equal(t, 3, guess.MaxGuesses)
	require.NotNil(t, guess.Board[red].Type)
	assert.Equal(t, game.RedAgent, *guess.Board[red].Type)

	// Same card again.
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Red","position":`+strconv.Itoa(red)+`}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Card already revealed")

	rec = do(t, s, http.MethodPost, "/games/"+id+"/endturn", `{"team":"Red"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decode[stateView](t, rec)
	assert.Equal(t, game.Blue, state.CurrentTeam)
	assert.Equal(t, game.PhaseAwaitingClue, state.Phase)
	require.Len(t, state.Clues, 1)
	assert.Equal(t, "QWXZ", state.Clues[0].Text)

	// Out of phase.
	rec = do(t, s, http.MethodPost, "/games/"+id+"/endturn", `{"team":"Blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Stored state is visible on the next read.
	rec = do(t, s, http.MethodGet, "/games/"+id+"/board/covered", "")
	cov := decode[coveredView](t, rec)
	revealed := 0
	for _, grp := range cov.Groups {
		for _, c := range grp.Cards {
			if c.Revealed {
				revealed++
				require.NotNil(t, c.Word)
				assert.Equal(t, "Red", grp.Category)
			}
		}
	}
	assert.Equal(t, 1, revealed)
}

func TestGuessCapThroughHTTP(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"seed":100}`).Game.GameID
	board := spymasterBoard(t, s, id)

	rec := do(t, s, http.MethodPost, "/games/"+id+"/clues", `{"clue":"QWXZ","count":0,"team":"Red"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	red := positionOf(t, board, game.RedAgent)
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Red","position":`+strconv.Itoa(red)+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	guess := decode[guessResponse](t, rec)
	assert.True(t, guess.TurnEnded)
	assert.Equal(t, 1, guess.CurrentClueGuesses)
	assert.Equal(t, 1, guess.MaxGuesses)

	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Red","position":`+strconv.Itoa((red+1)%game.BoardSize)+`}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maximum guesses for this clue already taken")
}

func TestActionValidation(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "").Game.GameID

	cases := []struct{ path, body string }{
		{"/clues", `{"clue":"QWXZ","team":"Red"}`},
		{"/clues", `{"clue":"QWXZ","count":1}`},
		{"/clues", `not json`},
		{"/guesses", `{"team":"Red"}`},
		{"/guesses", `{"team":"Purple","position":1}`},
		{"/endturn", `{}`},
	}
	for _, tc := range cases {
		rec := do(t, s, http.MethodPost, "/games/"+id+tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.path, tc.body)
	}

	rec := do(t, s, http.MethodPost, "/games/"+id+"/clues", `{"clue":"two words","count":1,"team":"Red"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a single word with letters only")
}

func TestListGames(t *testing.T) {
	s := newTestServer(t)
	first := createGame(t, s, "").Game.GameID
	second := createGame(t, s, "").Game.GameID

	rec := do(t, s, http.MethodGet, "/games", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]stateView](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].GameID)
	assert.Equal(t, second, list[1].GameID)
	for _, c := range list[0].Board {
		assert.Nil(t, c.Type)
	}
	assert.Nil(t, list[0].CurrentClueGuesses)
}

type dailyResp struct {
	Date    string      `json:"date"`
	Game    createView  `json:"game"`
	Covered coveredView `json:"covered"`
}

func TestDailyChallenge(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/daily/new", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	a := decode[dailyResp](t, rec)
	b := decode[dailyResp](t, do(t, s, http.MethodPost, "/daily/new", ""))
	assert.Equal(t, "2025-03-01", a.Date)
	assert.NotEqual(t, a.Game.GameID, b.Game.GameID)
	assert.Equal(t, a.Game.Board, b.Game.Board)

	id := a.Game.GameID
	board := spymasterBoard(t, s, id)
	rec = do(t, s, http.MethodPost, "/games/"+id+"/clues", `{"clue":"QWXZ","count":1,"team":"Red"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assassin := positionOf(t, board, game.Assassin)
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Red","position":`+strconv.Itoa(assassin)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	guess := decode[guessResponse](t, rec)
	assert.True(t, guess.GameEnded)
	require.NotNil(t, guess.Winner)
	assert.Equal(t, game.Blue, *guess.Winner)

	rec = do(t, s, http.MethodGet, "/daily/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[daily.Summary](t, rec)
	assert.Equal(t, daily.Summary{
		Date:            "2025-03-01",
		Games:           2,
		Completed:       1,
		BlueWins:        1,
		AssassinEndings: 1,
		AverageTurns:    1,
	}, sum)

	rec = do(t, s, http.MethodGet, "/daily/results?date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// flakyStore fails Update while failUpdates is set.
type flakyStore struct {
	store.Store
	failUpdates bool
}

func (f *flakyStore) Update(ctx context.Context, g *game.Game) error {
	if f.failUpdates {
		return errors.New("disk full")
	}
	return f.Store.Update(ctx, g)
}

func TestDailyResultWaitsForStoreUpdate(t *testing.T) {
	st := &flakyStore{Store: store.NewMemoryStore()}
	s := newTestServerWithStore(t, st)

	rec := do(t, s, http.MethodPost, "/daily/new", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[dailyResp](t, rec).Game.GameID
	board := spymasterBoard(t, s, id)
	rec = do(t, s, http.MethodPost, "/games/"+id+"/clues", `{"clue":"QWXZ","count":1,"team":"Red"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assassin := `{"team":"Red","position":` + strconv.Itoa(positionOf(t, board, game.Assassin)) + `}`
	st.failUpdates = true
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", assassin)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	sum := decode[daily.Summary](t, do(t, s, http.MethodGet, "/daily/results", ""))
	assert.Equal(t, 1, sum.Games)
	assert.Equal(t, 0, sum.Completed)
	state := decode[stateView](t, do(t, s, http.MethodGet, "/games/"+id, ""))
	assert.Equal(t, game.PhaseAwaitingGuesses, state.Phase)

	st.failUpdates = false
	rec = do(t, s, http.MethodPost, "/games/"+id+"/guesses", assassin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sum = decode[daily.Summary](t, do(t, s, http.MethodGet, "/daily/results", ""))
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 1, sum.BlueWins)
}

func TestConcurrentGuessesAreSerialised(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"seed":100}`).Game.GameID
	board := spymasterBoard(t, s, id)
	rec := do(t, s, http.MethodPost, "/games/"+id+"/clues", `{"clue":"QWXZ","count":8,"team":"Red"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	red := positionOf(t, board, game.RedAgent)
	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = do(t, s, http.MethodPost, "/games/"+id+"/guesses", `{"team":"Red","position":`+strconv.Itoa(red)+`}`).Code
		}()
	}
	wg.Wait()

	ok := 0
	for _, c := range codes {
		if c == http.StatusOK {
			ok++
		}
	}
	assert.Equal(t, 1, ok)

	state := decode[stateView](t, do(t, s, http.MethodGet, "/games/"+id, ""))
	assert.Equal(t, 8, state.RedAgentsRemaining)
	require.NotNil(t, state.CurrentClueGuesses)
	assert.Equal(t, 1, *state.CurrentClueGuesses)
}
