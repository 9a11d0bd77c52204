package config

import (
	"fmt"
	"time"

	"github.com/jrazmi/canaryapi/bridge/scaffolding/metrics"
	"github.com/jrazmi/canaryapi/bridge/utilitiesbridge"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
	"github.com/jrazmi/canaryapi/infrastructure/datastores/redisdb"
	"github.com/jrazmi/canaryapi/sdk/environment"
	"github.com/jrazmi/canaryapi/sdk/logger"
	"github.com/jrazmi/canaryapi/sdk/telemetry"
)

// Routes controls how many copies of the API are mounted and under what
// names. Base "api" with Count 3 mounts /api, /api2 and /api3.
type Routes struct {
	Base        string   `env:"ROUTE_GROUP_BASE" default:"api"`
	Count       int      `env:"ROUTE_GROUP_COUNT" default:"45"`
	Seed        bool     `env:"TASKS_SEED" default:"true"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"*" separator:","`
}

// LoadRoutes reads Routes from the environment.
func LoadRoutes(prefix string) (Routes, error) {
	var r Routes
	if err := environment.ParseEnvTags(prefix, &r); err != nil {
		return Routes{}, fmt.Errorf("parsing route config: %w", err)
	}
	return r, nil
}

// Repositories represents the repositories every route group shares.
type Repositories struct {
	Tasks    *tasksrepo.Repository
	Counters *countersrepo.Repository
}

// Canary is the overall configuration for the canary application.
type Canary struct {
	Build  string
	Logger *logger.Logger
	Routes Routes

	Repositories Repositories
	Redis        *redisdb.Client
	Upstream     utilitiesbridge.Pinger
	Telemetry    telemetry.Telemetry
	Metrics      *metrics.Metrics

	// MaxRequestTime bounds slow endpoints; set it to the server's write
	// timeout.
	MaxRequestTime time.Duration
}
