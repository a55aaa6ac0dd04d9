package bootstrap

import (
	"table-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule wires everything the commands and workers need, without HTTP.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	CacheModule,
	JWTModule,
	components.MessagingModule,
	components.QueueModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
)
