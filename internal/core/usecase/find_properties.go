package usecase

import (
	"context"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"property-service/internal/core/port/usecases_port"
)

// FindPropertiesUseCase - фильтр объектов с обогащением результата для REST
type FindPropertiesUseCase struct {
	filter    usecases_port.FilterPropertiesUseCase
	assembler *PropertyDetailsAssembler
}

func NewFindPropertiesUseCase(filter usecases_port.FilterPropertiesUseCase, assembler *PropertyDetailsAssembler) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{filter: filter, assembler: assembler}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filter domain.PropertyFilter) (*domain.PropertyDetailsPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "FindProperties"})

	result, err := uc.filter.Execute(ctx, filter)
	if err != nil {
		return nil, err
	}

	details, err := uc.assembler.Assemble(ctx, result.Properties)
	if err != nil {
		ucLogger.Error("Failed to enrich filtered properties", err, nil)
		return nil, err
	}

	return &domain.PropertyDetailsPage{
		Properties:      details,
		TotalCount:      result.TotalCount,
		Page:            result.Page,
		PageSize:        result.PageSize,
		TotalPages:      result.TotalPages,
		HasNextPage:     result.HasNextPage,
		HasPreviousPage: result.HasPreviousPage,
	}, nil
}
