package components

import (
	"rentalhub/internal/domain/booking"
	"rentalhub/internal/pkg/clock"
	"rentalhub/internal/pkg/config"
	"rentalhub/internal/pkg/jwt"
	"rentalhub/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		booking.NewFactory,
		usecase.NewTokenValidator,
		NewAuthUseCase,
		usecase.NewBookingUseCase,
		usecase.NewProductUseCase,
		usecase.NewPaymentUseCase,
		usecase.NewReportUseCase,
	),
)

func NewAuthUseCase(
	userRepo usecase.UserRepository,
	sessions usecase.SessionStore,
	jwtService *jwt.Service,
	cfg config.Config,
) usecase.AuthUseCase {
	return usecase.NewAuthUseCase(userRepo, sessions, jwtService, cfg.JWT.RefreshTTL())
}
