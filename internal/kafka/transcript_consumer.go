package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/bond-crm-service/internal/models"
	"go.uber.org/zap"
)

// TranscriptAnalyzer runs a transcript through extraction and validation
type TranscriptAnalyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error)
}

// messageReader is the subset of *kafka.Reader the consumer needs
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
	Config() kafka.ReaderConfig
}

// TranscriptConsumer handles consuming transcript events from Kafka
type TranscriptConsumer struct {
	reader   messageReader
	analyzer TranscriptAnalyzer
	logger   *zap.Logger
	running  atomic.Bool
}

// NewTranscriptConsumer creates a new Kafka consumer for transcript events
func NewTranscriptConsumer(brokers []string, topic, groupID string, analyzer TranscriptAnalyzer, logger *zap.Logger) *TranscriptConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID + "-transcripts",
		MinBytes:       1,    // transcripts are small and latency matters
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return newTranscriptConsumer(reader, analyzer, logger)
}

func newTranscriptConsumer(reader messageReader, analyzer TranscriptAnalyzer, logger *zap.Logger) *TranscriptConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptConsumer{
		reader:   reader,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Start consumes messages until ctx is cancelled
func (c *TranscriptConsumer) Start(ctx context.Context) error {
	c.running.Store(true)
	defer c.running.Store(false)

	c.logger.Info("Starting transcript consumer", zap.String("topic", c.reader.Config().Topic))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Transcript consumer shutting down")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil // Context cancelled, normal shutdown
				}
				c.logger.Warn("Error reading transcript message", zap.Error(err))
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error("Error processing transcript message",
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Error(err))
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *TranscriptConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	c.logger.Debug("Received transcript message",
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.ByteString("key", msg.Key))

	var event models.TranscriptEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal transcript event: %w", err)
	}

	if event.EventType != models.EventTranscriptSubmitted {
		c.logger.Debug("Ignoring event type", zap.String("event_type", event.EventType))
		return nil
	}

	source := event.Source
	if source == "" {
		source = "kafka"
	}

	analysis, err := c.analyzer.Analyze(ctx, models.AnalyzeRequest{
		Transcript: event.Data.Transcript,
		Source:     source,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze transcript %s: %w", event.Data.TranscriptID, err)
	}

	c.logger.Info("Processed transcript",
		zap.String("transcript_id", event.Data.TranscriptID),
		zap.String("analysis_id", analysis.ID),
		zap.Int("activities", len(analysis.Activities)),
		zap.Int("corrections", len(analysis.Corrections)))
	return nil
}

// Running reports whether Start is consuming
func (c *TranscriptConsumer) Running() bool {
	return c.running.Load()
}

// Close closes the Kafka consumer
func (c *TranscriptConsumer) Close() error {
	return c.reader.Close()
}
