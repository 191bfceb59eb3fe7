// apps/go-server/main.go
//
// Entry point for the Codenames Go server.
// Responsibilities:
//   - Load configuration (.env + environment) and set the log level.
//   - Build the word list, board generator, clue rules and game service.
//   - Open SQLite (daily ledger, optional game store) and start HTTP.
//   - Shut down cleanly on SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/apps/go-server/internal/config"
	"github.com/robalobadob/codenames/apps/go-server/internal/daily"
	"github.com/robalobadob/codenames/apps/go-server/internal/game"
	"github.com/robalobadob/codenames/apps/go-server/internal/httpserver"
	"github.com/robalobadob/codenames/apps/go-server/internal/store"
	"github.com/robalobadob/codenames/apps/go-server/internal/telemetry"
	"github.com/robalobadob/codenames/apps/go-server/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "codenames-go", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load word list")
	}
	gen, err := game.NewBoardGenerator(list)
	if err != nil {
		log.Fatal().Err(err).Msg("board generator")
	}
	rules, err := game.ValidatorByName(cfg.ClueRules)
	if err != nil {
		log.Fatal().Err(err).Msg("clue rules")
	}
	svc, err := game.NewService(gen,
		game.WithClueValidator(rules),
		game.WithStartingTeam(cfg.StartingTeam),
		game.WithLogger(log.Logger),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("game service")
	}

	db, err := store.OpenDB(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	st := store.NewMemoryStore()
	if cfg.StoreDriver == config.DriverSQLite {
		st = store.NewSQLiteStore(db)
	}

	srv := httpserver.New(cfg, httpserver.Deps{
		Service: svc,
		Store:   st,
		Daily:   daily.NewStore(db),
		Words:   list,
		Logger:  log.Logger,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Str("clue_rules", cfg.ClueRules).
		Int("words", list.Len()).
		Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
