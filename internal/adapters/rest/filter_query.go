package rest

import (
	"fmt"
	"net/url"
	"property-service/internal/core/domain"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateOnlyLayout = "2006-01-02"

// filterParams - параметры фильтра в том виде, в каком они выводятся в ошибках
var filterParams = []string{
	"Name", "Address", "MinPrice", "MaxPrice", "MinYear", "MaxYear", "OwnerId", "OwnerName",
	"CodeInternal", "CreatedAfter", "CreatedBefore", "Page", "PageSize", "SortBy", "SortDirection",
}

// queryValues - параметры запроса с ключами без учета регистра (MinPrice == minPrice).
// Пустые значения считаются отсутствующими.
type queryValues map[string][]string

func newQueryValues(values url.Values) queryValues {
	// порядок обхода map случаен, поэтому ключи сортируются до объединения
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	q := make(queryValues, len(values))
	for _, key := range keys {
		for _, v := range values[key] {
			if strings.TrimSpace(v) == "" {
				continue
			}
			lower := strings.ToLower(key)
			q[lower] = append(q[lower], v)
		}
	}
	return q
}

func (q queryValues) get(key string) (string, bool) {
	vals := q[strings.ToLower(key)]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// duplicates - параметры, переданные больше одного раза (в любом регистре)
func (q queryValues) duplicates(params []string) []string {
	var problems []string
	for _, param := range params {
		if len(q[strings.ToLower(param)]) > 1 {
			problems = append(problems, fmt.Sprintf("%s was supplied more than once", param))
		}
	}
	return problems
}

// number - значение для числовых параметров и дат, без пробелов по краям
func (q queryValues) number(key string) (string, bool) {
	v, ok := q.get(key)
	return strings.TrimSpace(v), ok
}

// parsePropertyFilter разбирает query-параметры фильтра.
// Ошибки разбора и нарушения правил фильтра возвращаются одним ValidationError.
func parsePropertyFilter(values url.Values) (domain.PropertyFilter, error) {
	q := newQueryValues(values)
	filter := domain.NewPropertyFilter()
	problems := q.duplicates(filterParams)

	text := func(key string) string {
		v, _ := q.get(key)
		return v
	}
	filter.Name = text("name")
	filter.Address = text("address")
	filter.OwnerID = text("ownerId")
	filter.OwnerName = text("ownerName")
	filter.CodeInternal = text("codeInternal")

	parseDecimal := func(key, field string) *decimal.Decimal {
		raw, ok := q.number(key)
		if !ok {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a valid number", field))
			return nil
		}
		return &d
	}
	parseInt := func(key, field string) *int {
		raw, ok := q.number(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a valid integer", field))
			return nil
		}
		return &n
	}
	parseDate := func(key, field string) *time.Time {
		raw, ok := q.number(key)
		if !ok {
			return nil
		}
		t, err := parseQueryTime(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a valid date", field))
			return nil
		}
		return &t
	}

	filter.MinPrice = parseDecimal("minPrice", "MinPrice")
	filter.MaxPrice = parseDecimal("maxPrice", "MaxPrice")
	filter.MinYear = parseInt("minYear", "MinYear")
	filter.MaxYear = parseInt("maxYear", "MaxYear")
	filter.CreatedAfter = parseDate("createdAfter", "CreatedAfter")
	filter.CreatedBefore = parseDate("createdBefore", "CreatedBefore")

	if page := parseInt("page", "Page"); page != nil {
		filter.Page = *page
	}
	if pageSize := parseInt("pageSize", "PageSize"); pageSize != nil {
		filter.PageSize = *pageSize
	}
	if sortBy, ok := q.number("sortBy"); ok {
		filter.SortBy = sortBy
	}
	if dir, ok := q.number("sortDirection"); ok {
		filter.SortDirection = dir
	}

	problems = append(problems, filter.Problems()...)
	return filter, domain.NewValidationError(problems)
}

func parseQueryTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
