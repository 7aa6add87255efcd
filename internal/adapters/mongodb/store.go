package mongodb

import (
	"context"
	"errors"
	"fmt"

	"property-service/internal/core/domain"
	"property-service/internal/core/port"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ownersCollection         = "Owners"
	propertiesCollection     = "Properties"
	propertyImagesCollection = "PropertyImages"
	propertyTracesCollection = "PropertyTraces"
)

// Store - хранилище в MongoDB, по коллекции на сущность
type Store struct {
	Owners     *OwnerRepository
	Properties *PropertyRepository
	Images     *PropertyImageRepository
	Traces     *PropertyTraceRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Owners:     &OwnerRepository{coll: db.Collection(ownersCollection)},
		Properties: &PropertyRepository{coll: db.Collection(propertiesCollection)},
		Images:     &PropertyImageRepository{coll: db.Collection(propertyImagesCollection)},
		Traces:     &PropertyTraceRepository{coll: db.Collection(propertyTracesCollection)},
	}
}

var (
	_ port.OwnerStoragePort         = (*OwnerRepository)(nil)
	_ port.PropertyStoragePort      = (*PropertyRepository)(nil)
	_ port.PropertyImageStoragePort = (*PropertyImageRepository)(nil)
	_ port.PropertyTraceStoragePort = (*PropertyTraceRepository)(nil)
)

// EnsureIndexes создает индексы под фильтр и выборки по внешним ключам. Повторный вызов безопасен.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.Properties.coll: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "year", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		s.Images.coll: {{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "enabled", Value: 1}}}},
		s.Traces.coll: {{Keys: bson.D{{Key: "propertyId", Value: 1}}}},
	}
	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func decodeAll[D any, T any](ctx context.Context, cursor *mongo.Cursor, convert func(D) (T, error)) ([]T, error) {
	defer cursor.Close(ctx)

	out := make([]T, 0)
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		item, err := convert(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}

func findOne[D any](ctx context.Context, coll *mongo.Collection, id string) (*D, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc D
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s by id: %w", coll.Name(), err)
	}
	return &doc, nil
}

// replaceOne проверяет MatchedCount: повторное сохранение того же содержимого - не ошибка
func replaceOne(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return fmt.Errorf("replace %s: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertedID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

type OwnerRepository struct {
	coll *mongo.Collection
}

func (r *OwnerRepository) List(ctx context.Context) ([]domain.Owner, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find owners: %w", err)
	}
	return decodeAll(ctx, cursor, func(d ownerDocument) (domain.Owner, error) { return d.toDomain(), nil })
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	doc, err := findOne[ownerDocument](ctx, r.coll, id)
	if err != nil {
		return nil, err
	}
	owner := doc.toDomain()
	return &owner, nil
}

func (r *OwnerRepository) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	res, err := r.coll.InsertOne(ctx, newOwnerDocument(owner))
	if err != nil {
		return nil, fmt.Errorf("insert owner: %w", err)
	}
	oid, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	owner.ID = oid.Hex()
	return &owner, nil
}

func (r *OwnerRepository) Update(ctx context.Context, owner domain.Owner) error {
	return replaceOne(ctx, r.coll, owner.ID, newOwnerDocument(owner))
}

func (r *OwnerRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *OwnerRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count owners: %w", err)
	}
	return int(n), nil
}

func (r *OwnerRepository) FindIDsByNameSubstring(ctx context.Context, text string) ([]string, error) {
	filter, err := renderFilter(domain.MatchAll().And(domain.Condition{Field: domain.FieldName, Op: domain.OpContains, Value: text}))
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find owners by name: %w", err)
	}
	return decodeAll(ctx, cursor, func(d ownerDocument) (string, error) { return d.ID.Hex(), nil })
}

type PropertyRepository struct {
	coll *mongo.Collection
}

func (r *PropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	return decodeAll(ctx, cursor, propertyDocument.toDomain)
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	doc, err := findOne[propertyDocument](ctx, r.coll, id)
	if err != nil {
		return nil, err
	}
	property, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Property, error) {
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "ownerId", Value: ownerID}})
	if err != nil {
		return nil, fmt.Errorf("find properties by owner: %w", err)
	}
	return decodeAll(ctx, cursor, propertyDocument.toDomain)
}

func (r *PropertyRepository) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	doc, err := newPropertyDocument(property)
	if err != nil {
		return nil, err
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	oid, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	property.ID = oid.Hex()
	return &property, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property domain.Property) error {
	doc, err := newPropertyDocument(property)
	if err != nil {
		return err
	}
	return replaceOne(ctx, r.coll, property.ID, doc)
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *PropertyRepository) Count(ctx context.Context, predicate domain.Predicate) (int, error) {
	filter, err := renderFilter(predicate)
	if err != nil {
		return 0, err
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return int(n), nil
}

func (r *PropertyRepository) Find(ctx context.Context, predicate domain.Predicate, order domain.SortOrder, window domain.PageWindow) ([]domain.Property, error) {
	filter, err := renderFilter(predicate)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(renderSort(order)).
		SetSkip(int64(window.Offset)).
		SetLimit(int64(window.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	return decodeAll(ctx, cursor, propertyDocument.toDomain)
}

type PropertyImageRepository struct {
	coll *mongo.Collection
}

func (r *PropertyImageRepository) List(ctx context.Context) ([]domain.PropertyImage, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find property images: %w", err)
	}
	return decodeAll(ctx, cursor, func(d propertyImageDocument) (domain.PropertyImage, error) { return d.toDomain(), nil })
}

func (r *PropertyImageRepository) GetByID(ctx context.Context, id string) (*domain.PropertyImage, error) {
	doc, err := findOne[propertyImageDocument](ctx, r.coll, id)
	if err != nil {
		return nil, err
	}
	image := doc.toDomain()
	return &image, nil
}

func (r *PropertyImageRepository) ListEnabledByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyImage, error) {
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "propertyId", Value: propertyID}, {Key: "enabled", Value: true}})
	if err != nil {
		return nil, fmt.Errorf("find property images by property: %w", err)
	}
	return decodeAll(ctx, cursor, func(d propertyImageDocument) (domain.PropertyImage, error) { return d.toDomain(), nil })
}

func (r *PropertyImageRepository) Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	res, err := r.coll.InsertOne(ctx, newPropertyImageDocument(image))
	if err != nil {
		return nil, fmt.Errorf("insert property image: %w", err)
	}
	oid, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	image.ID = oid.Hex()
	return &image, nil
}

func (r *PropertyImageRepository) Update(ctx context.Context, image domain.PropertyImage) error {
	return replaceOne(ctx, r.coll, image.ID, newPropertyImageDocument(image))
}

func (r *PropertyImageRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

type PropertyTraceRepository struct {
	coll *mongo.Collection
}

func (r *PropertyTraceRepository) List(ctx context.Context) ([]domain.PropertyTrace, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find property traces: %w", err)
	}
	return decodeAll(ctx, cursor, propertyTraceDocument.toDomain)
}

func (r *PropertyTraceRepository) GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error) {
	doc, err := findOne[propertyTraceDocument](ctx, r.coll, id)
	if err != nil {
		return nil, err
	}
	trace, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &trace, nil
}

func (r *PropertyTraceRepository) ListByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "propertyId", Value: propertyID}}, options.Find().SetSort(bson.D{{Key: "dateSale", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find property traces by property: %w", err)
	}
	return decodeAll(ctx, cursor, propertyTraceDocument.toDomain)
}

func (r *PropertyTraceRepository) Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	doc, err := newPropertyTraceDocument(trace)
	if err != nil {
		return nil, err
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert property trace: %w", err)
	}
	oid, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	trace.ID = oid.Hex()
	return &trace, nil
}

func (r *PropertyTraceRepository) Update(ctx context.Context, trace domain.PropertyTrace) error {
	doc, err := newPropertyTraceDocument(trace)
	if err != nil {
		return err
	}
	return replaceOne(ctx, r.coll, trace.ID, doc)
}

func (r *PropertyTraceRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *PropertyTraceRepository) DeleteByPropertyID(ctx context.Context, propertyID string) (int, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "propertyId", Value: propertyID}})
	if err != nil {
		return 0, fmt.Errorf("delete property traces by property: %w", err)
	}
	return int(res.DeletedCount), nil
}
