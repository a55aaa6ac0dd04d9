package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"table-booking/internal/pkg/tracing"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	keyPrefix             = "availability"
)

// AvailabilityCache keeps one JSON document per (table, local day).
type AvailabilityCache struct {
	client redis.Cmdable
	tracer tracing.Tracer
	ttl    time.Duration
}

var _ shared.AvailabilityCache = (*AvailabilityCache)(nil)

func NewAvailabilityCache(client redis.Cmdable, tracer tracing.Tracer, ttl time.Duration) *AvailabilityCache {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &AvailabilityCache{client: client, tracer: tracer, ttl: ttl}
}

func Key(tableID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, tableID.String(), day.Format(time.DateOnly))
}

func (c *AvailabilityCache) Get(ctx context.Context, tableID uuid.UUID, day time.Time) (busy []shared.BusyInterval, ok bool, err error) {
	key := Key(tableID, day)
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(raw, &busy); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return busy, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, tableID uuid.UUID, day time.Time, busy []shared.BusyInterval) (err error) {
	key := Key(tableID, day)
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Set")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute(otelCacheKeyAttribute, key)

	if busy == nil {
		busy = []shared.BusyInterval{}
	}
	raw, err := json.Marshal(busy)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, tableID uuid.UUID, days ...time.Time) (err error) {
	if len(days) == 0 {
		return nil
	}
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Invalidate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, Key(tableID, d))
	}
	scope.SetAttribute(otelCacheKeyAttribute, keys)

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache value: %w", err)
	}
	return nil
}
