package repository

import (
	"context"

	"SectorPulse/internal/domain/models"
	domrepo "SectorPulse/internal/domain/repository"
	pkgkafka "SectorPulse/pkg/kafka"
)

// KafkaRecordPublisher emits persisted analysis records to a Kafka topic,
// keyed by sector so one sector's records stay in partition order.
type KafkaRecordPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaRecordPublisher creates a Kafka record publisher.
func NewKafkaRecordPublisher(producer *pkgkafka.Producer, topic string) domrepo.RecordPublisher {
	return &KafkaRecordPublisher{producer: producer, topic: topic}
}

func (p *KafkaRecordPublisher) PublishRecord(ctx context.Context, record *models.AnalysisRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(record.Summary.Sector), record)
}

func (p *KafkaRecordPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
