package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage          = 1
	DefaultPageSize      = 10
	MaxPageSize          = 100
	DefaultSortBy        = "createdAt"
	DefaultSortDirection = "desc"

	minFilterYear = 1800
	maxFilterYear = 3000
)

// SortFields - допустимые значения sortBy в порядке, в котором они выводятся в ошибке
var SortFields = []string{"name", "price", "year", "address", "createdAt"}

// PropertyFilter - запрос на поиск объектов. Живет ровно один запрос и не меняется.
type PropertyFilter struct {
	Name          string
	Address       string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	MinYear       *int
	MaxYear       *int
	OwnerID       string
	OwnerName     string
	CodeInternal  string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// NewPropertyFilter возвращает фильтр со значениями по умолчанию
func NewPropertyFilter() PropertyFilter {
	return PropertyFilter{
		Page:          DefaultPage,
		PageSize:      DefaultPageSize,
		SortBy:        DefaultSortBy,
		SortDirection: DefaultSortDirection,
	}
}

// Problems собирает все нарушения правил, не останавливаясь на первом
func (f PropertyFilter) Problems() []string {
	var problems []string

	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		problems = append(problems, "MinPrice must be greater than or equal to 0")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		problems = append(problems, "MaxPrice must be greater than or equal to 0")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		problems = append(problems, "MinPrice cannot be greater than MaxPrice")
	}

	if f.MinYear != nil && (*f.MinYear < minFilterYear || *f.MinYear > maxFilterYear) {
		problems = append(problems, fmt.Sprintf("MinYear must be between %d and %d", minFilterYear, maxFilterYear))
	}
	if f.MaxYear != nil && (*f.MaxYear < minFilterYear || *f.MaxYear > maxFilterYear) {
		problems = append(problems, fmt.Sprintf("MaxYear must be between %d and %d", minFilterYear, maxFilterYear))
	}
	if f.MinYear != nil && f.MaxYear != nil && *f.MinYear > *f.MaxYear {
		problems = append(problems, "MinYear cannot be greater than MaxYear")
	}

	if f.CreatedAfter != nil && f.CreatedBefore != nil && f.CreatedAfter.After(*f.CreatedBefore) {
		problems = append(problems, "CreatedAfter cannot be greater than CreatedBefore")
	}

	if f.Page < 1 {
		problems = append(problems, "Page must be greater than 0")
	}
	if f.PageSize < 1 || f.PageSize > MaxPageSize {
		problems = append(problems, fmt.Sprintf("PageSize must be between 1 and %d", MaxPageSize))
	} else if f.Page > 1 && f.Page-1 > math.MaxInt/f.PageSize {
		problems = append(problems, "Page is too large for the given PageSize")
	}

	if !isKnownSortField(f.SortBy) {
		problems = append(problems, "SortBy must be one of: "+strings.Join(SortFields, ", "))
	}
	dir := strings.ToLower(f.SortDirection)
	if dir != "asc" && dir != "desc" {
		problems = append(problems, "SortDirection must be either 'asc' or 'desc'")
	}

	return problems
}

// Validate возвращает *ValidationError со всеми нарушениями либо nil
func (f PropertyFilter) Validate() error {
	return NewValidationError(f.Problems())
}

// Offset - смещение окна страницы. Для фильтра, прошедшего Validate, не переполняется.
func (f PropertyFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func isKnownSortField(value string) bool {
	for _, field := range SortFields {
		if strings.EqualFold(field, value) {
			return true
		}
	}
	return false
}

// PropertyFilterResult - страница найденных объектов и метаданные пагинации
type PropertyFilterResult struct {
	Properties      []Property
	TotalCount      int
	Page            int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPropertyFilterResult считает метаданные пагинации
func NewPropertyFilterResult(properties []Property, totalCount, page, pageSize int) *PropertyFilterResult {
	if properties == nil {
		properties = []Property{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return &PropertyFilterResult{
		Properties:      properties,
		TotalCount:      totalCount,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// PropertyDetailsPage - страница фильтра, обогащенная изображениями, историей и владельцами
type PropertyDetailsPage struct {
	Properties      []PropertyDetails
	TotalCount      int
	Page            int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}
