package usecase

import (
	"context"

	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// PropertyImagesUseCase - CRUD изображений
type PropertyImagesUseCase struct {
	storage port.PropertyImageStoragePort
	now     Clock
}

func NewPropertyImagesUseCase(storage port.PropertyImageStoragePort, now Clock) *PropertyImagesUseCase {
	if now == nil {
		now = SystemClock
	}
	return &PropertyImagesUseCase{storage: storage, now: now}
}

func (uc *PropertyImagesUseCase) List(ctx context.Context) ([]domain.PropertyImage, error) {
	images, err := uc.storage.List(ctx)
	if err != nil {
		return nil, domain.WrapStoreError("list property images", err)
	}
	return nonNil(images), nil
}

func (uc *PropertyImagesUseCase) GetByID(ctx context.Context, id string) (*domain.PropertyImage, error) {
	image, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStoreError("get property image", err)
	}
	return image, nil
}

func (uc *PropertyImagesUseCase) ListEnabledByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyImage, error) {
	images, err := uc.storage.ListEnabledByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, domain.WrapStoreError("list property images by property", err)
	}
	return nonNil(images), nil
}

func (uc *PropertyImagesUseCase) Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	now := uc.now()
	image.ID = ""
	image.CreatedAt = now
	image.UpdatedAt = now

	created, err := uc.storage.Create(ctx, image)
	if err != nil {
		return nil, domain.WrapStoreError("create property image", err)
	}
	return created, nil
}

func (uc *PropertyImagesUseCase) Update(ctx context.Context, image domain.PropertyImage) error {
	existing, err := uc.storage.GetByID(ctx, image.ID)
	if err != nil {
		return domain.WrapStoreError("get property image", err)
	}

	image.CreatedAt = existing.CreatedAt
	image.UpdatedAt = uc.now()

	if err := uc.storage.Update(ctx, image); err != nil {
		return domain.WrapStoreError("update property image", err)
	}
	return nil
}

func (uc *PropertyImagesUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.storage.Delete(ctx, id); err != nil {
		return domain.WrapStoreError("delete property image", err)
	}
	return nil
}
