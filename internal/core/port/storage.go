package port

import (
	"context"
	"property-service/internal/core/domain"
)

// OwnerStoragePort - хранилище владельцев
type OwnerStoragePort interface {
	List(ctx context.Context) ([]domain.Owner, error)
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error)
	Update(ctx context.Context, owner domain.Owner) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// FindIDsByNameSubstring - id владельцев, в имени которых есть text (без учета регистра)
	FindIDsByNameSubstring(ctx context.Context, text string) ([]string, error)
}

// PropertyStoragePort - хранилище объектов недвижимости.
// Count и Find - два независимых чтения, общий снимок данных не гарантируется.
type PropertyStoragePort interface {
	List(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Property, error)
	Create(ctx context.Context, property domain.Property) (*domain.Property, error)
	Update(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context, predicate domain.Predicate) (int, error)
	Find(ctx context.Context, predicate domain.Predicate, order domain.SortOrder, window domain.PageWindow) ([]domain.Property, error)
}

// PropertyImageStoragePort - хранилище изображений
type PropertyImageStoragePort interface {
	List(ctx context.Context) ([]domain.PropertyImage, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyImage, error)
	// ListEnabledByPropertyID - только изображения с Enabled == true
	ListEnabledByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyImage, error)
	Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error)
	Update(ctx context.Context, image domain.PropertyImage) error
	Delete(ctx context.Context, id string) error
}

// PropertyTraceStoragePort - хранилище истории продаж
type PropertyTraceStoragePort interface {
	List(ctx context.Context) ([]domain.PropertyTrace, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error)
	ListByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error)
	Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error)
	Update(ctx context.Context, trace domain.PropertyTrace) error
	Delete(ctx context.Context, id string) error
	// DeleteByPropertyID возвращает число удаленных записей
	DeleteByPropertyID(ctx context.Context, propertyID string) (int, error)
}
