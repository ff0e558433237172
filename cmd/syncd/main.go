package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldline/syncbox/internal/config"
	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/netmon"
	"github.com/fieldline/syncbox/internal/remote"
	"github.com/fieldline/syncbox/internal/status"
	"github.com/fieldline/syncbox/internal/store"
	syncer "github.com/fieldline/syncbox/internal/sync"
	"github.com/fieldline/syncbox/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDaemonLogger("syncd", cfg.App.LogPath)

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	rowStore, err := remote.NewHTTPRowStore(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote row store")
	}

	monitor := netmon.NewMonitor(rowStore, cfg.Sync.ProbeInterval, log)
	resolver := syncer.NewResolver(storages.Records, storages.Queue, log)
	coordinator := syncer.NewCoordinator(storages, rowStore, monitor, resolver, cfg.Sync, nil, nil, log)
	manager := syncer.NewManager(storages, rowStore, monitor, cfg.Sync, log)
	job := syncer.NewJob(coordinator, monitor, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	bootstrap(ctx, manager, log)

	pool := workers.NewWorkers(
		monitor,
		workers.WorkerFunc(func(ctx context.Context) {
			job.Start(ctx, cfg.Sync.Interval)
			<-ctx.Done()
			job.Stop()
		}),
	)
	pool.Run(ctx)

	var statusServer *status.Server
	if cfg.Status.Address != "" {
		handler := status.NewHandler(coordinator, storages.Queue, storages.Cursors, storages, cfg.Sync.MaxRetries, log)
		statusServer = status.NewServer(cfg.Status.Address, handler, log)
		go statusServer.Run()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if statusServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		statusServer.Shutdown(shutdownCtx)
		cancel()
	}
	pool.Wait()

	log.Info().Msg("goodbye")
}

// bootstrap performs the first-run full download when the local store is
// empty. An offline first start is fine: the store stays empty and the
// background job fills it once connectivity appears.
func bootstrap(ctx context.Context, manager syncer.Manager, log *logger.Logger) {
	needed, err := manager.InitialSyncNeeded(ctx)
	if err != nil {
		log.Error().Err(err).Msg("checking for first run failed")
		return
	}
	if !needed {
		return
	}

	log.Info().Msg("empty local store, running initial full sync")
	result, err := manager.FullSync(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("initial full sync skipped")
		return
	}
	log.Info().
		Int("pulled", result.Pulled).
		Int("tables_pulled", result.TablesPulled).
		Int("errors", len(result.Errors)).
		Msg("initial full sync finished")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
