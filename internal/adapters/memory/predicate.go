package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"property-service/internal/core/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// containsFold - подстрока без учета регистра с учетом Unicode (case folding)
func containsFold(value, text string) bool {
	return strings.Contains(folder.String(value), folder.String(text))
}

// matches проверяет все условия предиката
func matches(p domain.Property, predicate domain.Predicate) (bool, error) {
	for _, c := range predicate.Conditions {
		ok, err := matchCondition(p, c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchCondition(p domain.Property, c domain.Condition) (bool, error) {
	switch c.Field {
	case domain.FieldName:
		return matchString(p.Name, c)
	case domain.FieldAddress:
		return matchString(p.Address, c)
	case domain.FieldCodeInternal:
		return matchString(p.CodeInternal, c)
	case domain.FieldOwnerID:
		return matchString(p.OwnerID, c)
	case domain.FieldPrice:
		bound, ok := c.Value.(decimal.Decimal)
		if !ok {
			return false, unsupported(c)
		}
		return compare(p.Price.Cmp(bound), c)
	case domain.FieldYear:
		bound, ok := c.Value.(int)
		if !ok {
			return false, unsupported(c)
		}
		return compare(cmpInt(p.Year, bound), c)
	case domain.FieldCreatedAt:
		bound, ok := c.Value.(time.Time)
		if !ok {
			return false, unsupported(c)
		}
		return compare(p.CreatedAt.Compare(bound), c)
	}
	return false, unsupported(c)
}

func matchString(value string, c domain.Condition) (bool, error) {
	switch c.Op {
	case domain.OpContains:
		text, ok := c.Value.(string)
		if !ok {
			return false, unsupported(c)
		}
		return containsFold(value, text), nil
	case domain.OpEq:
		text, ok := c.Value.(string)
		if !ok {
			return false, unsupported(c)
		}
		return value == text, nil
	case domain.OpIn:
		set, ok := c.Value.([]string)
		if !ok {
			return false, unsupported(c)
		}
		for _, candidate := range set {
			if candidate == value {
				return true, nil
			}
		}
		return false, nil
	}
	return false, unsupported(c)
}

func compare(cmp int, c domain.Condition) (bool, error) {
	switch c.Op {
	case domain.OpGte:
		return cmp >= 0, nil
	case domain.OpLte:
		return cmp <= 0, nil
	case domain.OpEq:
		return cmp == 0, nil
	}
	return false, unsupported(c)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func unsupported(c domain.Condition) error {
	return fmt.Errorf("unsupported condition %s %s %T", c.Field, c.Op, c.Value)
}

// sortProperties сортирует стабильно: при равных ключах сохраняется порядок вставки
func sortProperties(items []domain.Property, order domain.SortOrder) {
	cmpBy := func(a, b domain.Property) int {
		switch order.Field {
		case domain.FieldName:
			return strings.Compare(a.Name, b.Name)
		case domain.FieldAddress:
			return strings.Compare(a.Address, b.Address)
		case domain.FieldPrice:
			return a.Price.Cmp(b.Price)
		case domain.FieldYear:
			return cmpInt(a.Year, b.Year)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		cmp := cmpBy(items[i], items[j])
		if order.Ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

// window вырезает страницу; offset за концом выборки дает пустой срез
func window(items []domain.Property, w domain.PageWindow) []domain.Property {
	if w.Offset < 0 || w.Offset >= len(items) {
		return []domain.Property{}
	}
	end := len(items)
	if w.Limit > 0 && w.Offset+w.Limit < end {
		end = w.Offset + w.Limit
	}
	return items[w.Offset:end]
}
