// apps/go-server/internal/config/config.go
//
// Process configuration.
// Responsibilities:
//   - Load an optional .env file (joho/godotenv), then environment variables.
//   - Apply defaults and reject unknown enumerated values at startup.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Port           string        `env:"PORT"                        envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL"                   envDefault:"info"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"               envDefault:"http://localhost:5173"`
	StartingTeam   game.Team     `env:"STARTING_TEAM"               envDefault:"Red"`
	BoardSeed      *int64        `env:"BOARD_SEED"`
	ClueRules      string        `env:"CLUE_RULES"                  envDefault:"basic"`
	WordsFile      string        `env:"WORDS_FILE"`
	StoreDriver    string        `env:"STORE_DRIVER"                envDefault:"memory"`
	DBPath         string        `env:"DB_PATH"                     envDefault:"./data/codenames.db"`
	DailySalt      string        `env:"DAILY_SALT"                  envDefault:"local_dev_salt"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"             envDefault:"10s"`
	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the given .env files (".env" when none are named; missing files
// are ignored) and parses the environment into a validated Config.
// Variables already set in the environment win over .env entries.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if !c.StartingTeam.Valid() {
		return fmt.Errorf("STARTING_TEAM: %w: %q", game.ErrInvalidTeam, c.StartingTeam)
	}
	if _, err := game.ValidatorByName(c.ClueRules); err != nil {
		return fmt.Errorf("CLUE_RULES: %w", err)
	}
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER: unknown driver %q", c.StoreDriver)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT: must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Level is the parsed LOG_LEVEL.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
