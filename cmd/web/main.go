package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/noble-hunt/AXLE-sub000/internal/envstruct"
	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/noble-hunt/AXLE-sub000/internal/generation"
	"github.com/noble-hunt/AXLE-sub000/internal/logging"
	"github.com/noble-hunt/AXLE-sub000/internal/registry"
	"github.com/noble-hunt/AXLE-sub000/internal/sqlite"
)

type application struct {
	logger  *slog.Logger
	service *generation.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address
	// dynamically with localhost:0.
	Addr string `env:"AXLE_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for
	// an ephemeral in-memory database.
	SqliteURL string `env:"AXLE_SQLITE_URL" envDefault:"./axle.sqlite3"`
	// OpenAIAPIKey enables the workout critic. Leave empty to disable the
	// review pass entirely.
	OpenAIAPIKey string `env:"AXLE_OPENAI_API_KEY" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var critic *generation.Critic
	if cfg.OpenAIAPIKey != "" {
		critic = generation.NewCritic(cfg.OpenAIAPIKey, logger)
	} else {
		logger.LogAttrs(ctx, slog.LevelInfo, "no OpenAI API key configured, critic disabled")
	}

	engine := generation.NewEngine(registry.New(), critic, logger)
	app := application{
		logger:  logger,
		service: generation.NewService(engine, db, logger),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
