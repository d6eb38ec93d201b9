package usecase

import (
	"context"
	"encoding/json"
	"time"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
	pkgkafka "PropSight/pkg/kafka"
)

// KafkaListingsHandler consumes scored listing messages and writes them to
// the snapshot store.
type KafkaListingsHandler struct {
	topic   string
	store   domrepo.SnapshotStore
	metrics domrepo.Metrics
}

func NewKafkaListingsHandler(topic string, store domrepo.SnapshotStore, metrics domrepo.Metrics) *KafkaListingsHandler {
	return &KafkaListingsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaListingsHandler) Topic() string { return h.topic }

func (h *KafkaListingsHandler) Handle(ctx context.Context, b []byte) error {
	var s models.ScoredListing
	if err := json.Unmarshal(b, &s); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	// E2E latency from scoring time to persistence (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(s.ScoredAt).Seconds())

	start := time.Now()
	err := h.store.Store(ctx, &s)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordListingScored("clickhouse", s.Listing.City)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaListingsHandler)(nil)
