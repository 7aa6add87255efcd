package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type OwnersUseCase interface {
	List(ctx context.Context) ([]domain.Owner, error)
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	Update(ctx context.Context, owner domain.Owner) error
	Delete(ctx context.Context, id string) error
}
