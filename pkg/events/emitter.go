// Package events handles event emission for record lifecycle changes.
// Emission is fire-and-forget: failures are logged and never surfaced to the
// submitting user.
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Emitter publishes record lifecycle events.
type Emitter interface {
	EmitRecordEvent(ctx context.Context, eventType string, recordType string, recordID string, userID string, data any)
}

// KafkaEmitter emits events through a Kafka producer.
type KafkaEmitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewKafkaEmitter creates a new Kafka-backed emitter
func NewKafkaEmitter(producer *kafka.Producer, logger ectologger.Logger) *KafkaEmitter {
	return &KafkaEmitter{
		producer: producer,
		logger:   logger,
	}
}

func (e *KafkaEmitter) EmitRecordEvent(ctx context.Context, eventType string, recordType string, recordID string, userID string, data any) {
	ctx, span := tracing.StartSpan(ctx, "events.KafkaEmitter.EmitRecordEvent")
	defer span.End()

	var payload json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"event_type": eventType,
			}).Error("failed to encode record event payload")
			return
		}
		payload = encoded
	}

	event := &kafka.RecordEvent{
		EventType:  eventType,
		RecordType: recordType,
		RecordID:   recordID,
		UserID:     userID,
		Data:       payload,
	}

	if err := e.producer.PublishRecordEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"event_type": eventType,
			"record_id":  recordID,
		}).Errorf("Failed to emit %s event", eventType)
	}
}

// NoopEmitter drops all events. Used when Kafka is disabled.
type NoopEmitter struct{}

func (NoopEmitter) EmitRecordEvent(ctx context.Context, eventType string, recordType string, recordID string, userID string, data any) {
}
