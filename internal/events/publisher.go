package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher defines the interface for publishing tracking events
type Publisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// KafkaPublisher implements Publisher using Watermill with Kafka
type KafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	Logger       *slog.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaPublisher(config PublisherConfig) (*KafkaPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaPublisher{
		publisher: publisher,
		logger:    config.Logger,
	}, nil
}

// Publish publishes a tracking event to the given Kafka topic
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)

	// Add metadata headers
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.publisher.Publish(topic, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"topic", topic,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", topic)

	return nil
}

// Close closes the publisher and releases resources
func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

// PublishedEvent pairs a recorded event with the topic it was sent to
type PublishedEvent struct {
	Topic string
	Event Event
}

// MockPublisher is a mock implementation for testing
type MockPublisher struct {
	Events []PublishedEvent
	Logger *slog.Logger
}

// NewMockPublisher creates a new mock event publisher
func NewMockPublisher(logger *slog.Logger) *MockPublisher {
	return &MockPublisher{
		Events: make([]PublishedEvent, 0),
		Logger: logger,
	}
}

// Publish stores the event in memory (for testing)
func (m *MockPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	m.Events = append(m.Events, PublishedEvent{Topic: topic, Event: *event})
	m.Logger.Info("Mock: Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", topic)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns all published events (for testing)
func (m *MockPublisher) GetPublishedEvents() []PublishedEvent {
	return m.Events
}

// ClearEvents clears all published events (for testing)
func (m *MockPublisher) ClearEvents() {
	m.Events = make([]PublishedEvent, 0)
}
