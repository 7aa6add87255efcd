package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type PropertyImagesUseCase interface {
	List(ctx context.Context) ([]domain.PropertyImage, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyImage, error)
	ListEnabledByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyImage, error)
	Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	Update(ctx context.Context, image domain.PropertyImage) error
	Delete(ctx context.Context, id string) error
}
