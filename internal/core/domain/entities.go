package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Owner - владелец объектов недвижимости
type Owner struct {
	ID        string
	Name      string
	Address   string
	Photo     string
	Birthday  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Property - объект недвижимости
type Property struct {
	ID           string
	Name         string
	Address      string
	Price        decimal.Decimal
	CodeInternal string
	Year         int
	OwnerID      string // ссылка на Owner, целостность не проверяется
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyImage - изображение объекта
type PropertyImage struct {
	ID         string
	PropertyID string
	File       string
	Enabled    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PropertyTrace - запись истории продаж объекта
type PropertyTrace struct {
	ID         string
	PropertyID string
	DateSale   time.Time
	Name       string
	Value      decimal.Decimal
	Tax        decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PropertyDetails - объект вместе с активными изображениями, историей и владельцем.
// Owner == nil, если ownerId ссылается на несуществующего владельца.
type PropertyDetails struct {
	Property
	Images []PropertyImage
	Traces []PropertyTrace
	Owner  *Owner
}

const maxTraceNameLength = 200

// Problems проверяет запись истории перед сохранением
func (t PropertyTrace) Problems() []string {
	var problems []string
	if t.PropertyID == "" {
		problems = append(problems, "PropertyId is required")
	}
	if t.DateSale.IsZero() {
		problems = append(problems, "DateSale is required")
	}
	if n := utf8.RuneCountInString(t.Name); n < 1 || n > maxTraceNameLength {
		problems = append(problems, fmt.Sprintf("Name must be between 1 and %d characters", maxTraceNameLength))
	}
	if t.Value.IsNegative() {
		problems = append(problems, "Value must be greater than or equal to 0")
	}
	if t.Tax.IsNegative() {
		problems = append(problems, "Tax must be greater than or equal to 0")
	}
	return problems
}

// Problems проверяет объект перед сохранением
func (p Property) Problems() []string {
	var problems []string
	if p.Price.IsNegative() {
		problems = append(problems, "Price must be greater than or equal to 0")
	}
	return problems
}
