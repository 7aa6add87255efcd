package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filter domain.PropertyFilter) (*domain.PropertyDetailsPage, error)
}
