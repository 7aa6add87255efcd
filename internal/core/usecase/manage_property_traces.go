package usecase

import (
	"context"
	"errors"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// PropertyTracesUseCase - CRUD истории продаж. Каждая запись должна ссылаться на существующий объект.
type PropertyTracesUseCase struct {
	storage    port.PropertyTraceStoragePort
	properties port.PropertyStoragePort
	publisher  port.PropertyEventPublisherPort
	now        Clock
}

func NewPropertyTracesUseCase(storage port.PropertyTraceStoragePort, properties port.PropertyStoragePort, publisher port.PropertyEventPublisherPort, now Clock) *PropertyTracesUseCase {
	if now == nil {
		now = SystemClock
	}
	return &PropertyTracesUseCase{storage: storage, properties: properties, publisher: publisher, now: now}
}

func (uc *PropertyTracesUseCase) List(ctx context.Context) ([]domain.PropertyTrace, error) {
	traces, err := uc.storage.List(ctx)
	if err != nil {
		return nil, domain.WrapStoreError("list property traces", err)
	}
	return nonNil(traces), nil
}

func (uc *PropertyTracesUseCase) GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error) {
	trace, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStoreError("get property trace", err)
	}
	return trace, nil
}

// ListByPropertyID возвращает ErrPropertyNotFound, если объекта нет
func (uc *PropertyTracesUseCase) ListByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	if err := uc.ensurePropertyExists(ctx, propertyID); err != nil {
		return nil, err
	}
	traces, err := uc.storage.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, domain.WrapStoreError("list property traces by property", err)
	}
	return nonNil(traces), nil
}

func (uc *PropertyTracesUseCase) Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "CreatePropertyTrace",
		"property_id": trace.PropertyID,
	})

	if err := domain.NewValidationError(trace.Problems()); err != nil {
		return nil, err
	}
	if err := uc.ensurePropertyExists(ctx, trace.PropertyID); err != nil {
		return nil, err
	}

	now := uc.now()
	trace.ID = ""
	trace.CreatedAt = now
	trace.UpdatedAt = now

	created, err := uc.storage.Create(ctx, trace)
	if err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return nil, domain.WrapStoreError("create property trace", err)
	}

	publishPropertyEvent(ctx, uc.publisher, domain.PropertyEvent{
		Type:       domain.PropertySold,
		PropertyID: created.PropertyID,
		Trace:      created,
		OccurredAt: now,
	})
	return created, nil
}

func (uc *PropertyTracesUseCase) Update(ctx context.Context, trace domain.PropertyTrace) error {
	if err := domain.NewValidationError(trace.Problems()); err != nil {
		return err
	}

	existing, err := uc.storage.GetByID(ctx, trace.ID)
	if err != nil {
		return domain.WrapStoreError("get property trace", err)
	}
	if err := uc.ensurePropertyExists(ctx, trace.PropertyID); err != nil {
		return err
	}

	trace.CreatedAt = existing.CreatedAt
	trace.UpdatedAt = uc.now()

	if err := uc.storage.Update(ctx, trace); err != nil {
		return domain.WrapStoreError("update property trace", err)
	}
	return nil
}

func (uc *PropertyTracesUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.storage.Delete(ctx, id); err != nil {
		return domain.WrapStoreError("delete property trace", err)
	}
	return nil
}

// DeleteByPropertyID возвращает ErrPropertyNotFound или ErrNoPropertyTraces, если удалять нечего
func (uc *PropertyTracesUseCase) DeleteByPropertyID(ctx context.Context, propertyID string) (int, error) {
	if err := uc.ensurePropertyExists(ctx, propertyID); err != nil {
		return 0, err
	}

	deleted, err := uc.storage.DeleteByPropertyID(ctx, propertyID)
	if err != nil {
		return 0, domain.WrapStoreError("delete property traces by property", err)
	}
	if deleted == 0 {
		return 0, domain.ErrNoPropertyTraces
	}

	contextkeys.LoggerFromContext(ctx).Info("Property traces deleted", port.Fields{
		"property_id": propertyID,
		"deleted":     deleted,
	})
	return deleted, nil
}

func (uc *PropertyTracesUseCase) ensurePropertyExists(ctx context.Context, propertyID string) error {
	_, err := uc.properties.GetByID(ctx, propertyID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrPropertyNotFound
	}
	if err != nil {
		return domain.WrapStoreError("get property", err)
	}
	return nil
}
