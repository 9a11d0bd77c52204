// Package redisdb opens and checks connections to Redis.
package redisdb

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jrazmi/canaryapi/sdk/environment"
)

type Client = redis.Client

// Config represents the redis environment
type Config struct {
	Host         string        `env:"REDIS_HOST" default:"localhost"`
	Port         int           `env:"REDIS_PORT" default:"6379"`
	DB           int           `env:"REDIS_DB" default:"0"`
	Password     string        `env:"REDIS_PASSWORD"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" default:"3s"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" default:"10"`
	PingOnOpen   bool          `env:"REDIS_PING_ON_OPEN" default:"false"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" default:"-1"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Addr is the host:port the client dials.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewClientFromEnv creates a new redis client using environment variables
func NewClientFromEnv(prefix string) (*redis.Client, error) {
	var cfg Config

	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing redis config: %w", err)
	}

	return Open(cfg)
}

// Open creates a client for cfg. The client connects lazily; with PingOnOpen
// set, Open fails when the server cannot be reached.
//
// MaxRetries defaults to -1 so a failed command surfaces immediately instead
// of being retried.
func Open(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   cfg.MaxRetries,
	})

	if cfg.PingOnOpen {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
		}
	}

	return client, nil
}

// StatusCheck returns nil if it can successfully talk to redis
func StatusCheck(ctx context.Context, client *redis.Client) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	return client.Ping(ctx).Err()
}
