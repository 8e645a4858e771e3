package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/bond-crm-service/internal/models"
)

const producerSource = "bond-crm-service"

// messageWriter is the subset of *kafka.Writer the producer needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes analysis events to Kafka
type Producer struct {
	writer messageWriter
	now    func() time.Time
}

// NewProducer creates a producer for the activities topic
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &Producer{writer: writer, now: time.Now}
}

// PublishActivities publishes an ACTIVITIES_EXTRACTED event keyed by analysis ID
func (p *Producer) PublishActivities(ctx context.Context, a *models.Analysis) error {
	event := models.ActivitiesEvent{
		EventType: models.EventActivitiesExtracted,
		Source:    producerSource,
		Timestamp: p.now().UTC(),
		Data:      a,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal activities event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(a.ID), Value: payload}); err != nil {
		return fmt.Errorf("failed to publish activities for analysis %s: %w", a.ID, err)
	}
	return nil
}

// Close flushes and closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
