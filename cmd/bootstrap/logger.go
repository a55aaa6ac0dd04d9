package bootstrap

import (
	"log/slog"

	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/logger"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
	// installs the default logger even when nothing asks for *slog.Logger
	fx.Invoke(func(*slog.Logger) {}),
)

func NewLogger(cfg config.Config) *slog.Logger {
	l := logger.New(cfg.Log)
	slog.SetDefault(l)
	return l
}
