package postgres

import (
	"fmt"
	"property-service/internal/core/domain"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// колонки таблицы properties для полей фильтра и сортировки
var propertyColumns = map[domain.PropertyField]string{
	domain.FieldName:         "p.name",
	domain.FieldAddress:      "p.address",
	domain.FieldPrice:        "p.price",
	domain.FieldYear:         "p.year",
	domain.FieldOwnerID:      "p.owner_id",
	domain.FieldCodeInternal: "p.code_internal",
	domain.FieldCreatedAt:    "p.created_at",
}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addPredicateCondition переводит одно условие предиката в SQL
func (qb *queryBuilder) addPredicateCondition(c domain.Condition) error {
	column, ok := propertyColumns[c.Field]
	if !ok {
		return unsupported(c)
	}

	switch c.Op {
	case domain.OpContains:
		text, ok := c.Value.(string)
		if !ok {
			return unsupported(c)
		}
		qb.addCondition(`%s ILIKE $%d ESCAPE '\'`, column, "%"+escapeLike(text)+"%")
	case domain.OpIn:
		ids, ok := c.Value.([]string)
		if !ok {
			return unsupported(c)
		}
		qb.addCondition("%s = ANY($%d)", column, ids)
	case domain.OpEq, domain.OpGte, domain.OpLte:
		if !isComparableValue(c.Value) {
			return unsupported(c)
		}
		qb.addCondition("%s "+sqlOperator(c.Op)+" $%d", column, c.Value)
	default:
		return unsupported(c)
	}
	return nil
}

// build создает WHERE-часть запроса
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyPredicate - главный метод, который разбирает предикат и строит WHERE
func applyPredicate(predicate domain.Predicate) (string, []interface{}, error) {
	qb := newQueryBuilder()
	for _, c := range predicate.Conditions {
		if err := qb.addPredicateCondition(c); err != nil {
			return "", nil, err
		}
	}
	where, args := qb.build()
	return where, args, nil
}

// orderClause - колонка берется только из propertyColumns, пользовательский текст в SQL не попадает
func orderClause(order domain.SortOrder) string {
	column, ok := propertyColumns[order.Field]
	if !ok {
		column = propertyColumns[domain.FieldCreatedAt]
	}
	direction := "DESC"
	if order.Ascending {
		direction = "ASC"
	}
	return "ORDER BY " + column + " " + direction
}

func sqlOperator(op domain.Operator) string {
	switch op {
	case domain.OpGte:
		return ">="
	case domain.OpLte:
		return "<="
	}
	return "="
}

func isComparableValue(v interface{}) bool {
	switch v.(type) {
	case decimal.Decimal, int, time.Time, string:
		return true
	}
	return false
}

// escapeLike экранирует спецсимволы LIKE, чтобы текст искался буквально
func escapeLike(text string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
}

func unsupported(c domain.Condition) error {
	return fmt.Errorf("postgres: unsupported condition %s %s %T", c.Field, c.Op, c.Value)
}
