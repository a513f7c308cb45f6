//go:build wireinject
// +build wireinject

package di

import (
	"donosync/internal"
	"donosync/internal/controllers"
	"donosync/internal/decoder"
	"donosync/internal/providers"
	"donosync/internal/services"
	"donosync/internal/spotlight"
	"donosync/internal/stream"
	"donosync/internal/stream/interfaces"
	"donosync/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewClockProvider,

		decoder.NewZstdCompressor,
		decoder.NewFrameDecoder,
		wire.Bind(new(services.FrameDecoderInterface), new(*decoder.FrameDecoder)),
		spotlight.NewCell,
		wire.Bind(new(services.SpotlightInterface), new(*spotlight.Cell)),
		services.NewSessionService,
		stream.NewWebsocketDialer,
		stream.NewManager,
		wire.Bind(new(controllers.ConnectionStateReader), new(interfaces.ConnectionInterface)),
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
