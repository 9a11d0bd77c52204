// Package utilitiesbridge serves the stateless and external-service endpoints
// mounted next to the task routes: fibonacci, sleep, hit count and the
// upstream ping relay.
package utilitiesbridge

import (
	"context"
	"time"

	"github.com/jrazmi/canaryapi/core/repositories/countersrepo"
	"github.com/jrazmi/canaryapi/infrastructure/upstream"
	"github.com/jrazmi/canaryapi/infrastructure/web"
	"github.com/jrazmi/canaryapi/sdk/logger"
)

// Pinger relays a ping to the upstream gateway.
type Pinger interface {
	Ping(ctx context.Context) (upstream.Response, error)
}

// Config holds configuration for the utilities bridge
type Config struct {
	Log      *logger.Logger
	Counters *countersrepo.Repository
	Upstream Pinger

	// MaxDuration is the longest a handler may run before the server gives up
	// writing its response, normally the server's write timeout. Zero means
	// no bound.
	MaxDuration time.Duration
}

// AddHttpRoutes registers the utility routes on group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/fib/{n}", b.httpFib)
	group.GET("/sleep/{n}", b.httpSleep)
	group.GET("/count", b.httpCount)
	group.GET("/redisping", b.httpRedisPing)
}
