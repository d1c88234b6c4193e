package bootstrap

import (
	"context"
	"log/slog"

	"rentalhub/internal/infra/events"
	"rentalhub/internal/pkg/config"
	"rentalhub/internal/usecase"

	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher connects to RabbitMQ when AMQP_URL is set, and degrades
// to a no-op publisher otherwise so local runs do not need a broker.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (usecase.BookingEventPublisher, error) {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP_URL not set, booking events will not be published")
		return events.NopPublisher{}, nil
	}

	publisher, cleanup, err := events.NewPublisher(cfg.AMQP)
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

	return publisher, nil
}
