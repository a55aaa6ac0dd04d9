package bootstrap

import (
	"context"

	"table-booking/internal/infra/cache"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/tracing"
	"table-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache falls back to a no-op cache when REDIS_ADDR is empty.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config, tracer tracing.Tracer) (shared.AvailabilityCache, error) {
	if cfg.Redis.Addr == "" {
		return shared.NoopAvailabilityCache{}, nil
	}
	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewAvailabilityCache(client, tracer, cfg.Redis.TTL), nil
}
