package domain

import "strings"

// PropertyField - поле объекта, по которому можно фильтровать или сортировать
type PropertyField string

const (
	FieldName         PropertyField = "name"
	FieldAddress      PropertyField = "address"
	FieldPrice        PropertyField = "price"
	FieldYear         PropertyField = "year"
	FieldOwnerID      PropertyField = "ownerId"
	FieldCodeInternal PropertyField = "codeInternal"
	FieldCreatedAt    PropertyField = "createdAt"
)

// Operator - вид сравнения в условии
type Operator int

const (
	OpContains Operator = iota // подстрока без учета регистра, Value string
	OpEq                       // точное совпадение, Value string
	OpGte                      // нижняя граница включительно
	OpLte                      // верхняя граница включительно
	OpIn                       // значение входит в набор, Value []string
)

func (o Operator) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpEq:
		return "eq"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	case OpIn:
		return "in"
	}
	return "unknown"
}

// Condition - одно условие. Тип Value зависит от поля:
// decimal.Decimal для price, int для year, time.Time для createdAt, иначе string или []string.
type Condition struct {
	Field PropertyField
	Op    Operator
	Value interface{}
}

// Predicate - конъюнкция условий. Пустой предикат совпадает со всеми записями.
type Predicate struct {
	Conditions []Condition
}

// MatchAll - предикат без условий
func MatchAll() Predicate {
	return Predicate{}
}

// IsMatchAll сообщает, что условий нет
func (p Predicate) IsMatchAll() bool {
	return len(p.Conditions) == 0
}

// And возвращает новый предикат с добавленными условиями
func (p Predicate) And(conditions ...Condition) Predicate {
	merged := make([]Condition, 0, len(p.Conditions)+len(conditions))
	merged = append(merged, p.Conditions...)
	merged = append(merged, conditions...)
	return Predicate{Conditions: merged}
}

// SortOrder - поле и направление сортировки. Вторичного ключа нет.
type SortOrder struct {
	Field     PropertyField
	Ascending bool
}

// ParseSortOrder переводит sortBy/sortDirection в SortOrder.
// Неизвестное поле -> createdAt; по возрастанию только при "asc".
func ParseSortOrder(sortBy, sortDirection string) SortOrder {
	order := SortOrder{
		Field:     FieldCreatedAt,
		Ascending: strings.EqualFold(sortDirection, "asc"),
	}
	switch strings.ToLower(sortBy) {
	case "name":
		order.Field = FieldName
	case "price":
		order.Field = FieldPrice
	case "year":
		order.Field = FieldYear
	case "address":
		order.Field = FieldAddress
	}
	return order
}

// PageWindow - окно offset/limit поверх отсортированной выборки
type PageWindow struct {
	Offset int
	Limit  int
}
