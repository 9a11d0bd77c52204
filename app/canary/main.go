package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/jrazmi/canaryapi/app/canary/api"
	"github.com/jrazmi/canaryapi/app/canary/config"
	"github.com/jrazmi/canaryapi/bridge/scaffolding/metrics"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo/stores/countersredisstore"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/canaryapi/infrastructure/datastores/redisdb"
	"github.com/jrazmi/canaryapi/infrastructure/upstream"
	"github.com/jrazmi/canaryapi/infrastructure/web"
	"github.com/jrazmi/canaryapi/sdk/environment"
	"github.com/jrazmi/canaryapi/sdk/logger"
	"github.com/jrazmi/canaryapi/sdk/telemetry"
)

var build = "develop"
var appName = "CANARY"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
		os.Exit(1)
	}
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName,
		logger.WithService(strings.ToLower(appName)),
		logger.WithTraceID(tel.GetTraceID),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATASTORES :*:
	rdb, err := redisdb.NewClientFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring redis support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing redis connection")
		rdb.Close()
	}()

	up, err := upstream.NewClientFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring upstream: %w", err)
	}
	// END DATASTORES //

	routes, err := config.LoadRoutes(appName)
	if err != nil {
		return err
	}

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support", "seed", routes.Seed)
	var seed []tasksrepo.CreateTask
	if routes.Seed {
		seed = tasksrepo.SeedTasks()
	}
	repositories := config.Repositories{
		Tasks:    tasksrepo.NewRepository(log, tasksmemstore.NewStore(seed...)),
		Counters: countersrepo.NewRepository(log, countersredisstore.NewStore(rdb)),
	}
	// END REPOSITORIES //

	server, err := web.NewServerFromEnv(appName,
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	server.Handler, err = api.WebHandler(config.Canary{
		Build:          build,
		Logger:         log,
		Routes:         routes,
		Repositories:   repositories,
		Redis:          rdb,
		Upstream:       up,
		Telemetry:      tel,
		Metrics:        metrics.New(strings.ToLower(appName)),
		MaxRequestTime: server.Config.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("building routes: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr,
			"groups", len(api.Prefixes(routes.Base, routes.Count)))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		if err := server.GracefulShutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}
