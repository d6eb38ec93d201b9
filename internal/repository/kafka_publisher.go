package repository

import (
	"context"

	"PropSight/internal/domain/models"
	"PropSight/internal/domain/repository"
	pkgkafka "PropSight/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Messages are keyed by
// listing ID so snapshots for the same listing land on the same partition in
// order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, s *models.ScoredListing) error {
	return p.producer.Publish(ctx, p.topic, []byte(s.Listing.ID), s)
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, batch []*models.ScoredListing) error {
	if len(batch) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(batch))
	for i, s := range batch {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(s.Listing.ID),
			Value: s,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
