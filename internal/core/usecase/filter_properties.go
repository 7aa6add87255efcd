package usecase

import (
	"context"
	"strings"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// FilterPropertiesUseCase переводит фильтр в предикат, сортировку и окно страницы,
// и возвращает страницу объектов с метаданными пагинации. Только чтение.
type FilterPropertiesUseCase struct {
	owners     port.OwnerStoragePort
	properties port.PropertyStoragePort
}

func NewFilterPropertiesUseCase(owners port.OwnerStoragePort, properties port.PropertyStoragePort) *FilterPropertiesUseCase {
	return &FilterPropertiesUseCase{owners: owners, properties: properties}
}

func (uc *FilterPropertiesUseCase) Execute(ctx context.Context, filter domain.PropertyFilter) (*domain.PropertyFilterResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "FilterProperties",
		"page":           filter.Page,
		"page_size":      filter.PageSize,
		"sort_by":        filter.SortBy,
		"sort_direction": filter.SortDirection,
	})

	ucLogger.Info("Use case started", nil)

	if err := filter.Validate(); err != nil {
		ucLogger.Warn("Filter rejected by validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	predicate := buildPropertyPredicate(filter)

	if !isBlank(filter.OwnerName) {
		ownerIDs, err := uc.owners.FindIDsByNameSubstring(ctx, filter.OwnerName)
		if err != nil {
			ucLogger.Error("Owner store failed to resolve owner name", err, nil)
			return nil, domain.WrapStoreError("resolve owner name", err)
		}
		if len(ownerIDs) == 0 {
			ucLogger.Info("No owners match owner name, returning empty page", port.Fields{"owner_name": filter.OwnerName})
			return domain.NewPropertyFilterResult(nil, 0, filter.Page, filter.PageSize), nil
		}
		predicate = predicate.And(domain.Condition{Field: domain.FieldOwnerID, Op: domain.OpIn, Value: ownerIDs})
	}

	// Count и Find - два отдельных чтения без общего снимка:
	// вставка или удаление между ними может сдвинуть границу страницы на одну запись.
	totalCount, err := uc.properties.Count(ctx, predicate)
	if err != nil {
		ucLogger.Error("Property store failed to count", err, nil)
		return nil, domain.WrapStoreError("count properties", err)
	}

	order := domain.ParseSortOrder(filter.SortBy, filter.SortDirection)
	window := domain.PageWindow{Offset: filter.Offset(), Limit: filter.PageSize}

	properties, err := uc.properties.Find(ctx, predicate, order, window)
	if err != nil {
		ucLogger.Error("Property store failed to find", err, nil)
		return nil, domain.WrapStoreError("find properties", err)
	}

	result := domain.NewPropertyFilterResult(properties, totalCount, filter.Page, filter.PageSize)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"conditions":    len(predicate.Conditions),
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Properties),
	})
	return result, nil
}

// buildPropertyPredicate собирает условия по всем заданным полям фильтра
func buildPropertyPredicate(filter domain.PropertyFilter) domain.Predicate {
	var conditions []domain.Condition

	addContains := func(field domain.PropertyField, text string) {
		if !isBlank(text) {
			conditions = append(conditions, domain.Condition{Field: field, Op: domain.OpContains, Value: text})
		}
	}

	addContains(domain.FieldName, filter.Name)
	addContains(domain.FieldAddress, filter.Address)

	if filter.MinPrice != nil {
		conditions = append(conditions, domain.Condition{Field: domain.FieldPrice, Op: domain.OpGte, Value: *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, domain.Condition{Field: domain.FieldPrice, Op: domain.OpLte, Value: *filter.MaxPrice})
	}

	if filter.MinYear != nil {
		conditions = append(conditions, domain.Condition{Field: domain.FieldYear, Op: domain.OpGte, Value: *filter.MinYear})
	}
	if filter.MaxYear != nil {
		conditions = append(conditions, domain.Condition{Field: domain.FieldYear, Op: domain.OpLte, Value: *filter.MaxYear})
	}

	if !isBlank(filter.OwnerID) {
		conditions = append(conditions, domain.Condition{Field: domain.FieldOwnerID, Op: domain.OpEq, Value: filter.OwnerID})
	}

	addContains(domain.FieldCodeInternal, filter.CodeInternal)

	if filter.CreatedAfter != nil {
		conditions = append(conditions, domain.Condition{Field: domain.FieldCreatedAt, Op: domain.OpGte, Value: *filter.CreatedAfter})
	}
	if filter.CreatedBefore != nil {
		conditions = append(conditions, domain.Condition{Field: domain.FieldCreatedAt, Op: domain.OpLte, Value: *filter.CreatedBefore})
	}

	return domain.MatchAll().And(conditions...)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
