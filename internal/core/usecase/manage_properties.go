package usecase

import (
	"context"
	"fmt"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// PropertiesUseCase - CRUD объектов недвижимости с публикацией событий
type PropertiesUseCase struct {
	storage   port.PropertyStoragePort
	assembler *PropertyDetailsAssembler
	publisher port.PropertyEventPublisherPort
	now       Clock
}

func NewPropertiesUseCase(storage port.PropertyStoragePort, assembler *PropertyDetailsAssembler, publisher port.PropertyEventPublisherPort, now Clock) *PropertiesUseCase {
	if now == nil {
		now = SystemClock
	}
	return &PropertiesUseCase{storage: storage, assembler: assembler, publisher: publisher, now: now}
}

func (uc *PropertiesUseCase) List(ctx context.Context) ([]domain.PropertyDetails, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListProperties"})

	properties, err := uc.storage.List(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, domain.WrapStoreError("list properties", err)
	}
	return uc.assembler.Assemble(ctx, properties)
}

func (uc *PropertiesUseCase) GetByID(ctx context.Context, id string) (*domain.PropertyDetails, error) {
	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStoreError("get property", err)
	}
	details, err := uc.assembler.Assemble(ctx, []domain.Property{*property})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (uc *PropertiesUseCase) ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Property, error) {
	properties, err := uc.storage.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, domain.WrapStoreError("list properties by owner", err)
	}
	return nonNil(properties), nil
}

func (uc *PropertiesUseCase) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "CreateProperty",
		"code_internal": property.CodeInternal,
	})

	if err := domain.NewValidationError(property.Problems()); err != nil {
		return nil, err
	}

	now := uc.now()
	property.ID = ""
	property.CreatedAt = now
	property.UpdatedAt = now

	created, err := uc.storage.Create(ctx, property)
	if err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return nil, domain.WrapStoreError("create property", err)
	}

	ucLogger.Info("Property created", port.Fields{"property_id": created.ID})
	uc.publish(ctx, domain.PropertyEvent{Type: domain.PropertyCreated, PropertyID: created.ID, Property: created, OccurredAt: now})
	return created, nil
}

func (uc *PropertiesUseCase) Update(ctx context.Context, property domain.Property) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": property.ID,
	})

	if err := domain.NewValidationError(property.Problems()); err != nil {
		return err
	}

	existing, err := uc.storage.GetByID(ctx, property.ID)
	if err != nil {
		return domain.WrapStoreError("get property", err)
	}

	property.CreatedAt = existing.CreatedAt
	property.UpdatedAt = uc.now()

	if err := uc.storage.Update(ctx, property); err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return domain.WrapStoreError("update property", err)
	}

	uc.publish(ctx, domain.PropertyEvent{Type: domain.PropertyUpdated, PropertyID: property.ID, Property: &property, OccurredAt: property.UpdatedAt})
	return nil
}

func (uc *PropertiesUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.storage.Delete(ctx, id); err != nil {
		return domain.WrapStoreError("delete property", err)
	}
	uc.publish(ctx, domain.PropertyEvent{Type: domain.PropertyDeleted, PropertyID: id, OccurredAt: uc.now()})
	return nil
}

// publish не возвращает ошибку: запись уже сохранена, событие - best effort
func (uc *PropertiesUseCase) publish(ctx context.Context, event domain.PropertyEvent) {
	publishPropertyEvent(ctx, uc.publisher, event)
}

func publishPropertyEvent(ctx context.Context, publisher port.PropertyEventPublisherPort, event domain.PropertyEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishPropertyEvent(ctx, event); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to publish property event", fmt.Errorf("event %s: %w", event.Type, err), port.Fields{
			"property_id": event.PropertyID,
		})
	}
}
