//go:build wireinject
// +build wireinject

package di

import (
	"PropSight/pkg/config"
	"PropSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideBytesCache,

		// Stores and publishers
		ProvideSnapshotStore,
		ProvidePublisher,
		ProvideReportStore,
		ProvideListingFeed,

		// Domain engines
		ProvideScorer,
		ProvideCostSegregator,

		// Use cases
		ProvideListingProcessor,
		ProvideListingCollector,
		ProvideKafkaListingsHandler,
		ProvideListingQuery,
		ProvideReportGenerator,

		// HTTP
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
