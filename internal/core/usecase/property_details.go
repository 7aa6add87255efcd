package usecase

import (
	"context"
	"errors"

	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// PropertyDetailsAssembler добавляет к объектам активные изображения, историю продаж и владельца
type PropertyDetailsAssembler struct {
	owners port.OwnerStoragePort
	images port.PropertyImageStoragePort
	traces port.PropertyTraceStoragePort
}

func NewPropertyDetailsAssembler(owners port.OwnerStoragePort, images port.PropertyImageStoragePort, traces port.PropertyTraceStoragePort) *PropertyDetailsAssembler {
	return &PropertyDetailsAssembler{owners: owners, images: images, traces: traces}
}

// Assemble сохраняет порядок входного списка
func (a *PropertyDetailsAssembler) Assemble(ctx context.Context, properties []domain.Property) ([]domain.PropertyDetails, error) {
	details := make([]domain.PropertyDetails, 0, len(properties))
	// один и тот же владелец часто встречается на странице несколько раз
	ownersByID := make(map[string]*domain.Owner)

	for _, property := range properties {
		item, err := a.assembleOne(ctx, property, ownersByID)
		if err != nil {
			return nil, err
		}
		details = append(details, item)
	}
	return details, nil
}

func (a *PropertyDetailsAssembler) assembleOne(ctx context.Context, property domain.Property, ownersByID map[string]*domain.Owner) (domain.PropertyDetails, error) {
	item := domain.PropertyDetails{Property: property}

	images, err := a.images.ListEnabledByPropertyID(ctx, property.ID)
	if err != nil {
		return item, domain.WrapStoreError("load property images", err)
	}
	traces, err := a.traces.ListByPropertyID(ctx, property.ID)
	if err != nil {
		return item, domain.WrapStoreError("load property traces", err)
	}
	item.Images = nonNil(images)
	item.Traces = nonNil(traces)

	if property.OwnerID == "" {
		return item, nil
	}
	owner, cached := ownersByID[property.OwnerID]
	if !cached {
		owner, err = a.owners.GetByID(ctx, property.OwnerID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return item, domain.WrapStoreError("load property owner", err)
		}
		ownersByID[property.OwnerID] = owner
	}
	item.Owner = owner
	return item, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
