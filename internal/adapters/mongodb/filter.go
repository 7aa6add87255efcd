package mongodb

import (
	"fmt"
	"regexp"
	"time"

	"property-service/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// renderFilter переводит предикат в фильтр MongoDB.
// Условия по одному полю сливаются в один документ операторов ({price: {$gte, $lte}}).
func renderFilter(predicate domain.Predicate) (bson.D, error) {
	filter := bson.D{}
	fieldIndex := make(map[string]int)

	for _, c := range predicate.Conditions {
		operators, err := renderCondition(c)
		if err != nil {
			return nil, err
		}
		key := string(c.Field)
		if i, ok := fieldIndex[key]; ok {
			filter[i].Value = append(filter[i].Value.(bson.D), operators...)
			continue
		}
		fieldIndex[key] = len(filter)
		filter = append(filter, bson.E{Key: key, Value: operators})
	}
	return filter, nil
}

func renderCondition(c domain.Condition) (bson.D, error) {
	switch c.Op {
	case domain.OpContains:
		text, ok := c.Value.(string)
		if !ok {
			return nil, unsupported(c)
		}
		// пользовательский текст ищется буквально, не как регулярное выражение
		return bson.D{{Key: "$regex", Value: primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}}}, nil
	case domain.OpIn:
		ids, ok := c.Value.([]string)
		if !ok {
			return nil, unsupported(c)
		}
		return bson.D{{Key: "$in", Value: ids}}, nil
	case domain.OpEq, domain.OpGte, domain.OpLte:
		value, err := renderValue(c)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: comparisonOperator(c.Op), Value: value}}, nil
	}
	return nil, unsupported(c)
}

func comparisonOperator(op domain.Operator) string {
	switch op {
	case domain.OpGte:
		return "$gte"
	case domain.OpLte:
		return "$lte"
	}
	return "$eq"
}

func renderValue(c domain.Condition) (interface{}, error) {
	switch v := c.Value.(type) {
	case decimal.Decimal:
		return toDecimal128(v)
	case int:
		return v, nil
	case time.Time:
		return v.UTC(), nil
	case string:
		return v, nil
	}
	return nil, unsupported(c)
}

func renderSort(order domain.SortOrder) bson.D {
	direction := -1
	if order.Ascending {
		direction = 1
	}
	return bson.D{{Key: string(order.Field), Value: direction}}
}

func unsupported(c domain.Condition) error {
	return fmt.Errorf("mongodb: unsupported condition %s %s %T", c.Field, c.Op, c.Value)
}
