// Package countersredisstore keeps counters in Redis. Every process pointed
// at the same server shares the same counts.
package countersredisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client redis.Cmdable
}

func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// Increment issues INCR, which creates the key at zero before incrementing.
func (s *Store) Increment(ctx context.Context, name string) (int64, error) {
	n, err := s.client.Incr(ctx, name).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return n, nil
}
