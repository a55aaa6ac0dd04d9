package bootstrap

import (
	"time"

	"table-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingLocation,
	),
)

// NewBookingLocation is the calendar used for availability days and reports.
func NewBookingLocation(cfg config.Config) *time.Location {
	return cfg.Booking.Location()
}
