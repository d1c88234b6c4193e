package components

import (
	"rentalhub/internal/infra/repository"
	"rentalhub/internal/infra/session"
	"rentalhub/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repository.NewProductRepository,
			fx.As(new(usecase.ProductRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repository.NewPaymentRepository,
			fx.As(new(usecase.PaymentRepository)),
		),
		fx.Annotate(
			repository.NewReportRepository,
			fx.As(new(usecase.ReportRepository)),
		),
		fx.Annotate(
			session.NewStore,
			fx.As(new(usecase.SessionStore)),
		),
	),
)
