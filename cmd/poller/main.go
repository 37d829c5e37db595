package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"forgepulse.app/tracker/common/id"
	"forgepulse.app/tracker/common/logger"
	"forgepulse.app/tracker/core/config"
	"forgepulse.app/tracker/core/db"
	"forgepulse.app/tracker/internal/classify"
	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/metrics"
	"forgepulse.app/tracker/internal/runlock"
	"forgepulse.app/tracker/internal/service"
	"forgepulse.app/tracker/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypePoller)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)
	logger.Setup(cfg)

	slog.InfoContext(ctx, "tracker poller starting",
		"env", cfg.Env,
		"interval", cfg.Poll.Interval.String(),
		"usernames", cfg.GitHub.Usernames,
		"monitored_repos", cfg.GitHub.MonitoredRepos())

	// Use a different node ID than the server
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(cfg.DB); err != nil {
		slog.ErrorContext(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected")

	stores := store.NewStores(database.Pool())

	feeds := github.NewClient(cfg.GitHub.AccessToken, slog.Default())
	sync := service.NewSyncService(service.SyncParams{
		Events:     stores.Events(),
		Feeds:      feeds,
		Classifier: classify.NewClassifier(nil),
		Links:      classify.NewLinkResolver(nil),
		Reconciler: service.NewIssueReconciler(stores.Issues(), slog.Default()),
		Enricher:   service.NewActorEnricher(stores.Actors(), feeds, cfg.GitHub.Organization, slog.Default()),
		Timeline:   service.NewTimelineProcessor(stores.Issues(), stores.LabelTimelines(), slog.Default()),
		Metrics:    metrics.New(),
		Config: service.SyncConfig{
			Usernames:      cfg.GitHub.Usernames,
			MonitoredRepos: cfg.GitHub.MonitoredRepos(),
			IncludePrivate: cfg.GitHub.IncludePrivate,
		},
		Logger: slog.Default(),
	})

	lock := runlock.New(redisClient, cfg.Redis.LockKey, cfg.Redis.LockTTL)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runLoop(runCtx, sync, lock, cfg.Poll.Interval)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	cancel()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		slog.WarnContext(ctx, "shutdown timed out waiting for run loop")
	}

	slog.InfoContext(ctx, "shutdown complete")
}

// runLoop runs one pass immediately, then one per tick. A pass that is
// still active when the next tick fires makes the tick a no-op via the
// run lock rather than queuing behind it.
func runLoop(ctx context.Context, sync service.SyncService, lock *runlock.Lock, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce(ctx, sync, lock)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, sync, lock)
		}
	}
}

func runOnce(ctx context.Context, sync service.SyncService, lock *runlock.Lock) {
	token, err := lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, runlock.ErrHeld) {
			slog.InfoContext(ctx, "skipping scheduled pass, a run is already active")
			return
		}
		slog.ErrorContext(ctx, "failed to acquire run lock", "error", err)
		return
	}
	defer func() {
		if err := lock.Release(ctx, token); err != nil {
			slog.ErrorContext(ctx, "failed to release run lock", "error", err)
		}
	}()

	sync.Run(ctx)
}

const banner = `
████████╗██████╗  █████╗  ██████╗██╗  ██╗███████╗██████╗
╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝██╔════╝██╔══██╗
   ██║   ██████╔╝███████║██║     █████╔╝ █████╗  ██████╔╝
   ██║   ██╔══██╗██╔══██║██║     ██╔═██╗ ██╔══╝  ██╔══██╗
   ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗███████╗██║  ██║
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
                                            poller
`
