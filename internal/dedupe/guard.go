// Package dedupe guards the post-call pipeline against webhook
// re-deliveries. The voice platform retries deliveries at-least-once,
// so the completion endpoint asks the guard before processing.
package dedupe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/utils"
)

// Guard answers whether a delivery for the given call id has been seen.
type Guard interface {
	// FirstDelivery returns true exactly once per call id within the
	// guard's window. A second delivery returns false.
	FirstDelivery(ctx context.Context, callID string) (bool, error)

	// Release forgets a call id so the next delivery counts as first
	// again. Called when processing failed after FirstDelivery, so the
	// platform's retry is not absorbed as a duplicate.
	Release(ctx context.Context, callID string) error
}

// RedisGuard backs the window with an atomic SET NX and a TTL, so
// every API replica shares one view of seen deliveries.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

func (g *RedisGuard) FirstDelivery(ctx context.Context, callID string) (bool, error) {
	return utils.MarkFirstDelivery(ctx, g.rdb, "postcall:"+callID, g.ttl)
}

func (g *RedisGuard) Release(ctx context.Context, callID string) error {
	return utils.ClearDelivery(ctx, g.rdb, "postcall:"+callID)
}

// Noop admits every delivery. Used when Redis is not configured; the
// CRM's phone-keyed upsert keeps duplicate processing tolerable.
type Noop struct{}

func (Noop) FirstDelivery(context.Context, string) (bool, error) { return true, nil }

func (Noop) Release(context.Context, string) error { return nil }
