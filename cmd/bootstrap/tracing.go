package bootstrap

import (
	"context"

	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/tracing"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Provide(
		NewTracer,
	),
)

func NewTracer(lc fx.Lifecycle, cfg config.Config) (tracing.Tracer, error) {
	tracer, shutdown, err := tracing.New(context.Background(), cfg.Tracing)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return tracer, nil
}
