package mongodb

import (
	"fmt"
	"time"

	"property-service/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Внешние ключи (ownerId, propertyId) хранятся строками hex, как их видит API.

type ownerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Address   string             `bson:"address"`
	Photo     string             `bson:"photo"`
	Birthday  time.Time          `bson:"birthday"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type propertyDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Address      string               `bson:"address"`
	Price        primitive.Decimal128 `bson:"price"`
	CodeInternal string               `bson:"codeInternal"`
	Year         int                  `bson:"year"`
	OwnerID      string               `bson:"ownerId"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

type propertyImageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID string             `bson:"propertyId"`
	File       string             `bson:"file"`
	Enabled    bool               `bson:"enabled"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

type propertyTraceDocument struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	PropertyID string               `bson:"propertyId"`
	DateSale   time.Time            `bson:"dateSale"`
	Name       string               `bson:"name"`
	Value      primitive.Decimal128 `bson:"value"`
	Tax        primitive.Decimal128 `bson:"tax"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	value, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("convert %s to Decimal128: %w", d.String(), err)
	}
	return value, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert Decimal128 %s: %w", d.String(), err)
	}
	return value, nil
}

// parseObjectID: невалидный id не может существовать в коллекции
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

func newOwnerDocument(o domain.Owner) ownerDocument {
	return ownerDocument{
		Name:      o.Name,
		Address:   o.Address,
		Photo:     o.Photo,
		Birthday:  o.Birthday,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (d ownerDocument) toDomain() domain.Owner {
	return domain.Owner{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Address:   d.Address,
		Photo:     d.Photo,
		Birthday:  d.Birthday.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func newPropertyDocument(p domain.Property) (propertyDocument, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return propertyDocument{}, err
	}
	return propertyDocument{
		Name:         p.Name,
		Address:      p.Address,
		Price:        price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		OwnerID:      p.OwnerID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func (d propertyDocument) toDomain() (domain.Property, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return domain.Property{}, err
	}
	return domain.Property{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Address:      d.Address,
		Price:        price,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}

func newPropertyImageDocument(i domain.PropertyImage) propertyImageDocument {
	return propertyImageDocument{
		PropertyID: i.PropertyID,
		File:       i.File,
		Enabled:    i.Enabled,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

func (d propertyImageDocument) toDomain() domain.PropertyImage {
	return domain.PropertyImage{
		ID:         d.ID.Hex(),
		PropertyID: d.PropertyID,
		File:       d.File,
		Enabled:    d.Enabled,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func newPropertyTraceDocument(t domain.PropertyTrace) (propertyTraceDocument, error) {
	value, err := toDecimal128(t.Value)
	if err != nil {
		return propertyTraceDocument{}, err
	}
	tax, err := toDecimal128(t.Tax)
	if err != nil {
		return propertyTraceDocument{}, err
	}
	return propertyTraceDocument{
		PropertyID: t.PropertyID,
		DateSale:   t.DateSale,
		Name:       t.Name,
		Value:      value,
		Tax:        tax,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}, nil
}

func (d propertyTraceDocument) toDomain() (domain.PropertyTrace, error) {
	value, err := fromDecimal128(d.Value)
	if err != nil {
		return domain.PropertyTrace{}, err
	}
	tax, err := fromDecimal128(d.Tax)
	if err != nil {
		return domain.PropertyTrace{}, err
	}
	return domain.PropertyTrace{
		ID:         d.ID.Hex(),
		PropertyID: d.PropertyID,
		DateSale:   d.DateSale.UTC(),
		Name:       d.Name,
		Value:      value,
		Tax:        tax,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}, nil
}
