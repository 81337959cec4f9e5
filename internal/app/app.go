package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/fetch"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/contentpage"
	graduationrepo "github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/graduation"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/pendingasset"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/student"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/redis"
	"github.com/heartmarshall/gradbook-backend/internal/adapter/storage"
	"github.com/heartmarshall/gradbook-backend/internal/auth"
	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/pdf"
	"github.com/heartmarshall/gradbook-backend/internal/service/assets"
	"github.com/heartmarshall/gradbook-backend/internal/service/booklet"
	"github.com/heartmarshall/gradbook-backend/internal/service/collab"
	"github.com/heartmarshall/gradbook-backend/internal/service/graduation"
	"github.com/heartmarshall/gradbook-backend/internal/service/roster"
	"github.com/heartmarshall/gradbook-backend/internal/transport/middleware"
	"github.com/heartmarshall/gradbook-backend/internal/transport/rest"
	"github.com/heartmarshall/gradbook-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, Redis and the asset store, starts the scheduled jobs and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.String("error", err.Error()))
		}
	}()
	broker := redis.NewBroker(redisClient, cfg.Redis.ChannelPrefix, logger)

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	// --- Repositories ---

	txm := postgres.NewTxManager(pool)
	graduations := graduationrepo.New(pool)
	students := student.New(pool)
	pages := contentpage.New(pool)
	pending := pendingasset.New(pool)

	// --- Services ---

	coordinator := collab.NewCoordinator(logger, graduations, broker, nil, cfg.Collab)
	assetSvc := assets.NewService(logger, pending, store, cfg.Assets)

	assembler := booklet.NewAssembler(
		logger,
		graduations,
		students,
		pages,
		fetch.New(cfg.Booklet.FetchTimeout, logger),
		store,
		pdf.NewRenderer(cfg.Booklet.CharsPerLine),
		pdf.NewEngine(),
		broker,
		booklet.NewMetrics(prometheus.DefaultRegisterer),
		cfg.Booklet,
	)

	graduationSvc := graduation.NewService(
		logger, graduations, students, pages, assetSvc, coordinator, txm, cfg.Auth.BcryptCost,
	)
	rosterSvc := roster.NewService(
		logger, graduations, students, pages, assetSvc, broker, txm, cfg.Auth.BcryptCost,
	)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	// --- Scheduled jobs ---

	scheduler, err := newScheduler(cfg, coordinator, assetSvc, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	// --- HTTP ---

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, middleware.WithRegisterer(prometheus.DefaultRegisterer))
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Health: rest.NewHealthHandler(Version, map[string]rest.PingFunc{
			"database": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}),
		Booklets:    rest.NewBookletHandler(assembler, graduationSvc, logger),
		Graduations: rest.NewGraduationHandler(graduationSvc, logger),
		Roster:      rest.NewRosterHandler(rosterSvc, logger),
		Collab:      rest.NewCollabHandler(coordinator, graduationSvc, logger),
		Presence: rest.NewPresenceSocket(
			coordinator, graduationSvc, middleware.OriginChecker(cfg.CORS), cfg.Collab.WebSocketReadLimit, logger,
		),
		Uploads:   rest.NewUploadHandler(store, graduationSvc, cfg.Storage.UploadURLTTL, logger),
		Metrics:   promhttp.Handler(),
		Tokens:    tokens,
		Limiter:   limiter,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newScheduler registers the stale lock sweep and the asset reaper. Each job
// is skipped while its previous run is still going.
func newScheduler(cfg *config.Config, coord *collab.Coordinator, reaper *assets.Service, logger *slog.Logger) (*cron.Cron, error) {
	cl := cronLogger{log: logger.With("component", "scheduler")}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(cfg.Collab.LockPruneSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := coord.PruneAllLocks(ctx)
		if err != nil {
			logger.Error("prune stale locks", slog.String("error", err.Error()))
			return
		}
		if n > 0 {
			logger.Info("stale locks pruned", slog.Int64("count", n))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule lock pruning: %w", err)
	}

	_, err = c.AddFunc(cfg.Assets.ReaperSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		res, err := reaper.Reap(ctx)
		if err != nil {
			logger.Error("reap assets", slog.String("error", err.Error()))
			return
		}
		if res.Deleted > 0 || res.Failed > 0 {
			logger.Info("assets reaped",
				slog.Int("deleted", res.Deleted),
				slog.Int("failed", res.Failed),
			)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule asset reaper: %w", err)
	}

	return c, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err.Error())...)
}
