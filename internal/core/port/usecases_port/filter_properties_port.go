package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type FilterPropertiesUseCase interface {
	Execute(ctx context.Context, filter domain.PropertyFilter) (*domain.PropertyFilterResult, error)
}
