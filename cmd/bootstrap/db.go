package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"table-booking/internal/infra/db"
	"table-booking/internal/infra/memstore"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/uow"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the configured store. The memory driver keeps
// everything in process and is meant for local runs.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config) (shared.UnitOfWork, error) {
	switch cfg.Store.Driver {
	case "memory":
		slog.Warn("using in-memory store; data is lost on exit")
		return memstore.New(), nil
	case "postgres", "":
		pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})
		return uow.NewPostgresUoW(pool, query.New()), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
