package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

// PropertyTracesUseCase проверяет существование объекта, на который ссылается история
type PropertyTracesUseCase interface {
	List(ctx context.Context) ([]domain.PropertyTrace, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error)
	ListByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error)
	Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	Update(ctx context.Context, trace domain.PropertyTrace) error
	Delete(ctx context.Context, id string) error
	DeleteByPropertyID(ctx context.Context, propertyID string) (int, error)
}
