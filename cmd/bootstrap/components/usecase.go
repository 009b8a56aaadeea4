package components

import (
	"rentease/internal/domain/booking"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/config"
	"rentease/internal/usecase/commands"
	"rentease/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingPolicy,
	fx.Annotate(
		booking.NewStandardPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewReviewCommands,
		commands.NewNotificationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewListingQueries,
		queries.NewReviewQueries,
		queries.NewNotificationQueries,
		queries.NewUserQueries,
	),
)

func NewBookingPolicy(cfg config.Config) booking.Policy {
	return booking.Policy{
		PaymentEnabled:  cfg.Booking.PaymentEnabled,
		ServiceFeeBps:   cfg.Booking.ServiceFeeBps,
		RequestedBlocks: cfg.Booking.RequestedBlocks,
	}
}
