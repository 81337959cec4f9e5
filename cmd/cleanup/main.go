// Command cleanup runs one pass of the stale field-lock sweep and the asset
// reaper. It is for deployments that disable the in-process scheduler and
// drive cleanup from an external cron job.
//
// Usage:
//
//	cleanup [--config=/etc/gradbook/config.yaml]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/graduation"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/pendingasset"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/storage"
	"github.com/heartmarshall/gradbook-backend/internal/app"
	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
	"github.com/heartmarshall/gradbook-backend/internal/service/assets"
	"github.com/heartmarshall/gradbook-backend/internal/service/collab"
)

// noBroker drops change notifications; nobody is subscribed to a one-shot run.
type noBroker struct{}

func (noBroker) Publish(context.Context, string, domain.ChangeKind) error { return nil }

func (noBroker) Subscribe(context.Context, string) (<-chan domain.ChangeEvent, func(), error) {
	ch := make(chan domain.ChangeEvent)
	close(ch)
	return ch, func() {}, nil
}

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		logger.Error("connect to storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	coord := collab.NewCoordinator(logger, graduation.New(pool), noBroker{}, nil, cfg.Collab)
	pruned, err := coord.PruneAllLocks(ctx)
	if err != nil {
		logger.Error("prune stale locks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reaper := assets.NewService(logger, pendingasset.New(pool), store, cfg.Assets)
	res, err := reaper.Reap(ctx)
	if err != nil {
		logger.Error("reap assets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int64("locks_pruned", pruned),
		slog.Int("assets_deleted", res.Deleted),
		slog.Int("assets_failed", res.Failed),
	)
}
