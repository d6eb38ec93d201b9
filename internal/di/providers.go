package di

import (
	"context"
	"fmt"
	"time"

	"PropSight/internal/domain/repository"
	domsvc "PropSight/internal/domain/service"
	"PropSight/internal/handler/api"
	mid "PropSight/internal/middleware"
	internalrepo "PropSight/internal/repository"
	icache "PropSight/internal/service/cache"
	"PropSight/internal/services/costseg"
	"PropSight/internal/services/provider"
	"PropSight/internal/services/scoring"
	"PropSight/internal/usecase"
	pkgch "PropSight/pkg/clickhouse"
	"PropSight/pkg/config"
	xhttp "PropSight/pkg/http"
	pkgkafka "PropSight/pkg/kafka"
	applogger "PropSight/pkg/logger"
	"PropSight/pkg/metrics"
	"PropSight/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		TimeFormat: cfg.Logging.TimeFormat,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSnapshotStore creates the ClickHouse snapshot store and ensures the
// schema exists.
func ProvideSnapshotStore(chClient *pkgch.Client, l *applogger.Logger) (repository.SnapshotStore, error) {
	store := internalrepo.NewCHSnapshotStore(chClient)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("snapshot schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend is
// configured; otherwise returns nil.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePublisher creates the Kafka publisher for the kafka backend, nil
// otherwise.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer for the kafka backend
// (draining scored listings into ClickHouse), nil otherwise.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaListingsHandler registers the handler for the listings topic.
func ProvideKafkaListingsHandler(store repository.SnapshotStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaListingsHandler {
	return usecase.NewKafkaListingsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideListingFeed creates the configured provider feed.
func ProvideListingFeed(cfg *config.Config) repository.ListingFeed {
	if cfg.Provider.Mode == "live" {
		return provider.NewLiveFeed(
			cfg.Provider.APIKey,
			cfg.Provider.BaseURL,
			cfg.Provider.WebSocketURL,
			cfg.Provider.Markets,
			cfg.Provider.ReconnectDelay,
			cfg.Provider.PingInterval,
		)
	}
	return provider.NewMockFeed(cfg.Provider.Markets, cfg.Provider.MockInterval, cfg.Provider.MockSeed)
}

// ProvideScorer creates the listing scorer.
func ProvideScorer() domsvc.ListingScorer {
	return scoring.NewService()
}

// ProvideCostSegregator creates the cost segregation engine.
func ProvideCostSegregator() domsvc.CostSegregator {
	return costseg.NewService()
}

// ProvideListingProcessor creates the listing processor use case.
func ProvideListingProcessor(
	scorer domsvc.ListingScorer,
	pub repository.Publisher,
	store repository.SnapshotStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ListingProcessor {
	return usecase.NewListingProcessor(
		scorer,
		pub,
		store,
		m,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideListingCollector creates the collector with the scoring pipeline in
// front of the processor.
func ProvideListingCollector(
	feed repository.ListingFeed,
	processor *usecase.ListingProcessor,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ListingCollector {
	opts := []mid.PipelineOption{mid.WithBufferSize(2000)}
	if cfg.Provider.MaxRPS > 0 {
		opts = append(opts, mid.WithMaxRPS(cfg.Provider.MaxRPS))
	}
	pipe := mid.NewScorePipeline(processor, m, opts...)
	return usecase.NewListingCollector(feed, processor, m, pipe)
}

// ProvideReportStore opens the SQLite report store and ensures the schema.
func ProvideReportStore(cfg *config.Config) (repository.ReportStore, error) {
	store, err := internalrepo.NewSQLiteReportStore(cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("report schema: %w", err)
	}
	return store, nil
}

// ProvideReportGenerator creates the report generator use case.
func ProvideReportGenerator(store repository.ReportStore, engine domsvc.CostSegregator, m repository.Metrics) *usecase.ReportGenerator {
	return usecase.NewReportGenerator(store, engine, m)
}

// ProvideBytesCache creates Redis-backed cache when enabled, in-process TTL
// cache otherwise.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideListingQuery creates the listing read use case.
func ProvideListingQuery(store repository.SnapshotStore, c icache.BytesCache, m repository.Metrics, cfg *config.Config) *usecase.ListingQuery {
	return usecase.NewListingQuery(store, c, cfg.Cache.TTL, m)
}

// ProvideRouter builds the HTTP route registrar from all handlers.
func ProvideRouter(
	l *applogger.Logger,
	gen *usecase.ReportGenerator,
	query *usecase.ListingQuery,
	collector *usecase.ListingCollector,
	snapshots repository.SnapshotStore,
	c icache.BytesCache,
	cfg *config.Config,
) xhttp.Handler {
	reports := api.NewReportsHandler(l, gen)
	listings := api.NewListingsHandler(l, query)
	listings.SetCache(c)
	health := api.NewHealthHandler(collector, snapshots, cfg.Backend.Type)
	return api.NewRouter(reports, listings, health)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.ListingCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaListingsHandler,
	chClient *pkgch.Client,
	reportStore repository.ReportStore,
	handler xhttp.Handler,
) *server.App {
	app := server.New(cfg, l, collector, consumer, kh, chClient, reportStore, handler)
	if collector != nil {
		app.Proc = collector.Processor()
	}
	return app
}
