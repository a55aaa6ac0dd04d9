package components

import (
	"table-booking/internal/handler"
	"table-booking/internal/handler/api"
	"table-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewTableHandler,
		api.NewEmergencyHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	reservations *api.ReservationHandler,
	tables *api.TableHandler,
	emergencies *api.EmergencyHandler,
	notifications *api.NotificationHandler,
) handler.Handlers {
	return handler.Handlers{
		Reservations:  reservations,
		Tables:        tables,
		Emergencies:   emergencies,
		Notifications: notifications,
	}
}
