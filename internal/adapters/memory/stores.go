package memory

import (
	"context"

	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// Store - хранилище в памяти процесса. Используется в тестах и при STORAGE_DRIVER=memory.
type Store struct {
	Owners     *OwnerStore
	Properties *PropertyStore
	Images     *PropertyImageStore
	Traces     *PropertyTraceStore
}

func NewStore() *Store {
	return &Store{
		Owners:     &OwnerStore{items: newCollection[domain.Owner]()},
		Properties: &PropertyStore{items: newCollection[domain.Property]()},
		Images:     &PropertyImageStore{items: newCollection[domain.PropertyImage]()},
		Traces:     &PropertyTraceStore{items: newCollection[domain.PropertyTrace]()},
	}
}

var (
	_ port.OwnerStoragePort         = (*OwnerStore)(nil)
	_ port.PropertyStoragePort      = (*PropertyStore)(nil)
	_ port.PropertyImageStoragePort = (*PropertyImageStore)(nil)
	_ port.PropertyTraceStoragePort = (*PropertyTraceStore)(nil)
)

type OwnerStore struct {
	items *collection[domain.Owner]
}

func (s *OwnerStore) List(ctx context.Context) ([]domain.Owner, error) {
	return s.items.all(), nil
}

func (s *OwnerStore) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	owner, err := s.items.get(id)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (s *OwnerStore) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	created := s.items.insert(func(id string) domain.Owner {
		owner.ID = id
		return owner
	})
	return &created, nil
}

func (s *OwnerStore) Update(ctx context.Context, owner domain.Owner) error {
	return s.items.replace(owner.ID, owner)
}

func (s *OwnerStore) Delete(ctx context.Context, id string) error {
	return s.items.remove(id)
}

func (s *OwnerStore) Count(ctx context.Context) (int, error) {
	return s.items.size(), nil
}

func (s *OwnerStore) FindIDsByNameSubstring(ctx context.Context, text string) ([]string, error) {
	ids := make([]string, 0)
	for _, owner := range s.items.filter(func(o domain.Owner) bool { return containsFold(o.Name, text) }) {
		ids = append(ids, owner.ID)
	}
	return ids, nil
}

type PropertyStore struct {
	items *collection[domain.Property]
}

func (s *PropertyStore) List(ctx context.Context) ([]domain.Property, error) {
	return s.items.all(), nil
}

func (s *PropertyStore) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.items.get(id)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PropertyStore) ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return s.items.filter(func(p domain.Property) bool { return p.OwnerID == ownerID }), nil
}

func (s *PropertyStore) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	created := s.items.insert(func(id string) domain.Property {
		property.ID = id
		return property
	})
	return &created, nil
}

func (s *PropertyStore) Update(ctx context.Context, property domain.Property) error {
	return s.items.replace(property.ID, property)
}

func (s *PropertyStore) Delete(ctx context.Context, id string) error {
	return s.items.remove(id)
}

func (s *PropertyStore) Count(ctx context.Context, predicate domain.Predicate) (int, error) {
	matched, err := s.match(ctx, predicate)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *PropertyStore) Find(ctx context.Context, predicate domain.Predicate, order domain.SortOrder, w domain.PageWindow) ([]domain.Property, error) {
	matched, err := s.match(ctx, predicate)
	if err != nil {
		return nil, err
	}
	sortProperties(matched, order)
	return window(matched, w), nil
}

func (s *PropertyStore) match(ctx context.Context, predicate domain.Predicate) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var matchErr error
	matched := s.items.filter(func(p domain.Property) bool {
		if matchErr != nil {
			return false
		}
		ok, err := matches(p, predicate)
		if err != nil {
			matchErr = err
		}
		return ok
	})
	if matchErr != nil {
		return nil, matchErr
	}
	return matched, nil
}

type PropertyImageStore struct {
	items *collection[domain.PropertyImage]
}

func (s *PropertyImageStore) List(ctx context.Context) ([]domain.PropertyImage, error) {
	return s.items.all(), nil
}

func (s *PropertyImageStore) GetByID(ctx context.Context, id string) (*domain.PropertyImage, error) {
	image, err := s.items.get(id)
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *PropertyImageStore) ListEnabledByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyImage, error) {
	return s.items.filter(func(i domain.PropertyImage) bool {
		return i.PropertyID == propertyID && i.Enabled
	}), nil
}

func (s *PropertyImageStore) Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	created := s.items.insert(func(id string) domain.PropertyImage {
		image.ID = id
		return image
	})
	return &created, nil
}

func (s *PropertyImageStore) Update(ctx context.Context, image domain.PropertyImage) error {
	return s.items.replace(image.ID, image)
}

func (s *PropertyImageStore) Delete(ctx context.Context, id string) error {
	return s.items.remove(id)
}

type PropertyTraceStore struct {
	items *collection[domain.PropertyTrace]
}

func (s *PropertyTraceStore) List(ctx context.Context) ([]domain.PropertyTrace, error) {
	return s.items.all(), nil
}

func (s *PropertyTraceStore) GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error) {
	trace, err := s.items.get(id)
	if err != nil {
		return nil, err
	}
	return &trace, nil
}

func (s *PropertyTraceStore) ListByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	return s.items.filter(func(t domain.PropertyTrace) bool { return t.PropertyID == propertyID }), nil
}

func (s *PropertyTraceStore) Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	created := s.items.insert(func(id string) domain.PropertyTrace {
		trace.ID = id
		return trace
	})
	return &created, nil
}

func (s *PropertyTraceStore) Update(ctx context.Context, trace domain.PropertyTrace) error {
	return s.items.replace(trace.ID, trace)
}

func (s *PropertyTraceStore) Delete(ctx context.Context, id string) error {
	return s.items.remove(id)
}

func (s *PropertyTraceStore) DeleteByPropertyID(ctx context.Context, propertyID string) (int, error) {
	return s.items.removeWhere(func(t domain.PropertyTrace) bool { return t.PropertyID == propertyID }), nil
}
