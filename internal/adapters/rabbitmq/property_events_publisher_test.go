package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

type capturingPublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (c *capturingPublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish context has no deadline")
	}
	c.routingKey = routingKey
	c.msg = msg
	return c.err
}

func TestPublishPropertyEventSetsRoutingKeyHeadersAndBody(t *testing.T) {
	producer := &capturingPublisher{}
	adapter, err := NewPropertyEventsAdapter(producer)
	if err != nil {
		t.Fatalf("NewPropertyEventsAdapter: %v", err)
	}

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	occurred := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := domain.PropertyEvent{
		Type:       domain.PropertySold,
		PropertyID: "p1",
		Trace:      &domain.PropertyTrace{ID: "t1", Name: "Initial Purchase", Value: decimal.NewFromInt(1000), Tax: decimal.NewFromInt(20)},
		OccurredAt: occurred,
	}

	if err := adapter.PublishPropertyEvent(ctx, event); err != nil {
		t.Fatalf("PublishPropertyEvent: %v", err)
	}

	if producer.routingKey != "property.sold" {
		t.Fatalf("routing key = %q", producer.routingKey)
	}
	if producer.msg.Headers["x-trace-id"] != "trace-1" || producer.msg.Headers["x-event-type"] != "property.sold" {
		t.Fatalf("unexpected headers %v", producer.msg.Headers)
	}
	if producer.msg.DeliveryMode != amqp.Persistent || producer.msg.ContentType != "application/json" {
		t.Fatalf("unexpected delivery settings %+v", producer.msg)
	}

	var dto PropertyEventDTO
	if err := json.Unmarshal(producer.msg.Body, &dto); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if dto.PropertyID != "p1" || dto.Trace == nil || dto.Trace.ID != "t1" || dto.Property != nil {
		t.Fatalf("unexpected body %+v", dto)
	}
	if !dto.Trace.Value.Equal(decimal.NewFromInt(1000)) || !dto.OccurredAt.Equal(occurred) {
		t.Fatalf("unexpected trace payload %+v", dto.Trace)
	}
}

func TestPublishPropertyEventWrapsProducerError(t *testing.T) {
	cause := errors.New("channel closed")
	adapter, _ := NewPropertyEventsAdapter(&capturingPublisher{err: cause})

	err := adapter.PublishPropertyEvent(context.Background(), domain.PropertyEvent{Type: domain.PropertyDeleted, PropertyID: "p1"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped producer error, got %v", err)
	}
}

func TestNewPropertyEventsAdapterRequiresProducer(t *testing.T) {
	if _, err := NewPropertyEventsAdapter(nil); err == nil {
		t.Fatal("expected error for nil producer")
	}
}
