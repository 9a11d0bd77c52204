// Package api assembles the service's routes: one copy of every bridge per
// route group plus the service-wide endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrazmi/canaryapi/app/canary/config"
	"github.com/jrazmi/canaryapi/app/canary/landing"
	"github.com/jrazmi/canaryapi/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/canaryapi/bridge/scaffolding/mid"
	"github.com/jrazmi/canaryapi/bridge/utilitiesbridge"
	"github.com/jrazmi/canaryapi/infrastructure/datastores/redisdb"
	"github.com/jrazmi/canaryapi/infrastructure/web"
)

// Prefixes returns the route group prefixes for base and count: "/base" for
// the first group, then "/base2", "/base3" and so on. A count below one still
// yields the first group.
func Prefixes(base string, count int) []string {
	prefixes := []string{"/" + base}
	for i := 2; i <= count; i++ {
		prefixes = append(prefixes, "/"+base+strconv.Itoa(i))
	}
	return prefixes
}

// WebHandler builds the full http.Handler for the service.
func WebHandler(cfg config.Canary) (http.Handler, error) {
	wh := web.NewWebHandler(
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(cfg.Metrics),
			mid.Panics(),
		),
	)

	for _, prefix := range Prefixes(cfg.Routes.Base, cfg.Routes.Count) {
		group := wh.Group(prefix)

		landing.AddHttpRoutes(group, cfg.Build)
		tasksrepobridge.AddHttpRoutes(group, tasksrepobridge.Config{
			Log:        cfg.Logger,
			Repository: cfg.Repositories.Tasks,
		})
		utilitiesbridge.AddHttpRoutes(group, utilitiesbridge.Config{
			Log:         cfg.Logger,
			Counters:    cfg.Repositories.Counters,
			Upstream:    cfg.Upstream,
			MaxDuration: cfg.MaxRequestTime,
		})
	}

	wh.GET("/healthz", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse("ok")
	})
	wh.GET("/readyz", func(ctx context.Context, r *http.Request) web.Encoder {
		if err := redisdb.StatusCheck(ctx, cfg.Redis); err != nil {
			cfg.Logger.WarnContext(ctx, "readiness", "redis", err)
			return web.TextResponse{Body: "redis unavailable", Status: http.StatusServiceUnavailable}
		}
		return web.NewTextResponse("ok")
	})
	wh.HandleRaw("GET /metrics", cfg.Metrics.Handler())
	if err := landing.AddStatic(wh); err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}

	var h http.Handler = wh
	h = mid.Compress()(h)
	h = mid.CORS(cfg.Routes.CORSOrigins...)(h)
	return h, nil
}
