package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"property-service/internal/constants"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// messagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// PropertyEventDTO - тело сообщения в properties_exchange
type PropertyEventDTO struct {
	Type       string            `json:"type"`
	PropertyID string            `json:"propertyId"`
	OccurredAt time.Time         `json:"occurredAt"`
	Property   *PropertyEventRef `json:"property,omitempty"`
	Trace      *TraceEventRef    `json:"trace,omitempty"`
}

type PropertyEventRef struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Price        decimal.Decimal `json:"price"`
	CodeInternal string          `json:"codeInternal"`
	Year         int             `json:"year"`
	OwnerID      string          `json:"ownerId"`
}

type TraceEventRef struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	DateSale time.Time       `json:"dateSale"`
	Value    decimal.Decimal `json:"value"`
	Tax      decimal.Decimal `json:"tax"`
}

func newPropertyEventDTO(event domain.PropertyEvent) PropertyEventDTO {
	dto := PropertyEventDTO{
		Type:       string(event.Type),
		PropertyID: event.PropertyID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if p := event.Property; p != nil {
		dto.Property = &PropertyEventRef{
			Name:         p.Name,
			Address:      p.Address,
			Price:        p.Price,
			CodeInternal: p.CodeInternal,
			Year:         p.Year,
			OwnerID:      p.OwnerID,
		}
	}
	if t := event.Trace; t != nil {
		dto.Trace = &TraceEventRef{
			ID:       t.ID,
			Name:     t.Name,
			DateSale: t.DateSale.UTC(),
			Value:    t.Value,
			Tax:      t.Tax,
		}
	}
	return dto
}

// PropertyEventsAdapter публикует события объектов. Ключ маршрутизации равен типу события.
type PropertyEventsAdapter struct {
	producer messagePublisher
}

func NewPropertyEventsAdapter(producer messagePublisher) (*PropertyEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &PropertyEventsAdapter{producer: producer}, nil
}

func (a *PropertyEventsAdapter) PublishPropertyEvent(ctx context.Context, event domain.PropertyEvent) error {
	routingKey := string(event.Type)
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyEventsAdapter",
		"routing_key": routingKey,
		"property_id": event.PropertyID,
	})

	body, err := json.Marshal(newPropertyEventDTO(event))
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal %s event: %w", event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         routingKey,
		Headers: amqp.Table{
			"x-event-type":    routingKey,
			"x-event-version": constants.PropertyEventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, constants.PublishTimeoutSeconds*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish property event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s for property %s: %w", event.Type, event.PropertyID, err)
	}

	adapterLogger.Debug("Property event published", nil)
	return nil
}

// NoopPropertyEventsPublisher используется при RABBITMQ_ENABLED=false
type NoopPropertyEventsPublisher struct{}

func (NoopPropertyEventsPublisher) PublishPropertyEvent(ctx context.Context, event domain.PropertyEvent) error {
	return nil
}
