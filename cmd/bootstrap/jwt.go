package bootstrap

import (
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/jwt"
	"table-booking/internal/usecase"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
		usecase.NewTokenIssuer,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
}
