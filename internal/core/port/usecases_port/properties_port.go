package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type PropertiesUseCase interface {
	List(ctx context.Context) ([]domain.PropertyDetails, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyDetails, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Property, error)
	Create(ctx context.Context, property domain.Property) (*domain.Property, error)
	Update(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, id string) error
}
