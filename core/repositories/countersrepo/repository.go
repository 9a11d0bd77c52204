// Package countersrepo provides named, shared hit counters.
package countersrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/canaryapi/sdk/logger"
)

// Hits is the counter the count endpoint increments.
const Hits = "hits"

// Storer increments a named counter atomically and returns the new value. A
// counter that does not exist yet starts at zero.
type Storer interface {
	Increment(ctx context.Context, name string) (int64, error)
}

// Repository provides access to counter storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Increment bumps the named counter by one. Failures are not retried.
func (r *Repository) Increment(ctx context.Context, name string) (int64, error) {
	n, err := r.storer.Increment(ctx, name)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to increment counter", "counter", name, "error", err)
		return 0, fmt.Errorf("increment %s: %w", name, err)
	}
	return n, nil
}
