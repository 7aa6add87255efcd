package usecase

import (
	"context"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// OwnersUseCase - CRUD владельцев
type OwnersUseCase struct {
	storage port.OwnerStoragePort
	now     Clock
}

func NewOwnersUseCase(storage port.OwnerStoragePort, now Clock) *OwnersUseCase {
	if now == nil {
		now = SystemClock
	}
	return &OwnersUseCase{storage: storage, now: now}
}

func (uc *OwnersUseCase) List(ctx context.Context) ([]domain.Owner, error) {
	owners, err := uc.storage.List(ctx)
	if err != nil {
		return nil, domain.WrapStoreError("list owners", err)
	}
	return nonNil(owners), nil
}

func (uc *OwnersUseCase) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	owner, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStoreError("get owner", err)
	}
	return owner, nil
}

func (uc *OwnersUseCase) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	now := uc.now()
	owner.ID = ""
	owner.CreatedAt = now
	owner.UpdatedAt = now

	created, err := uc.storage.Create(ctx, owner)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Storage returned an error during owner create", err, nil)
		return nil, domain.WrapStoreError("create owner", err)
	}
	return created, nil
}

func (uc *OwnersUseCase) Update(ctx context.Context, owner domain.Owner) error {
	existing, err := uc.storage.GetByID(ctx, owner.ID)
	if err != nil {
		return domain.WrapStoreError("get owner", err)
	}

	owner.CreatedAt = existing.CreatedAt
	owner.UpdatedAt = uc.now()

	if err := uc.storage.Update(ctx, owner); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Storage returned an error during owner update", err, port.Fields{"owner_id": owner.ID})
		return domain.WrapStoreError("update owner", err)
	}
	return nil
}

func (uc *OwnersUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.storage.Delete(ctx, id); err != nil {
		return domain.WrapStoreError("delete owner", err)
	}
	return nil
}
