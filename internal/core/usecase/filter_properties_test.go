package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"property-service/internal/adapters/memory"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

// spyPropertyStore считает обращения к Count/Find и запоминает предикат
type spyPropertyStore struct {
	port.PropertyStoragePort
	countCalls    int
	findCalls     int
	lastPredicate domain.Predicate
	lastOrder     domain.SortOrder
	lastWindow    domain.PageWindow
	err           error
}

func (s *spyPropertyStore) Count(ctx context.Context, predicate domain.Predicate) (int, error) {
	s.countCalls++
	s.lastPredicate = predicate
	if s.err != nil {
		return 0, s.err
	}
	return s.PropertyStoragePort.Count(ctx, predicate)
}

func (s *spyPropertyStore) Find(ctx context.Context, predicate domain.Predicate, order domain.SortOrder, window domain.PageWindow) ([]domain.Property, error) {
	s.findCalls++
	s.lastOrder = order
	s.lastWindow = window
	return s.PropertyStoragePort.Find(ctx, predicate, order, window)
}

func newFilterFixture(t *testing.T) (*memory.Store, *spyPropertyStore, *FilterPropertiesUseCase) {
	t.Helper()
	store := memory.NewStore()
	spy := &spyPropertyStore{PropertyStoragePort: store.Properties}
	return store, spy, NewFilterPropertiesUseCase(store.Owners, spy)
}

func mustCreateProperty(t *testing.T, store *memory.Store, p domain.Property) domain.Property {
	t.Helper()
	created, err := store.Properties.Create(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	return *created
}

func TestFilterPriceAscendingPagination(t *testing.T) {
	store, spy, uc := newFilterFixture(t)
	for _, price := range []int64{300, 100, 200} {
		mustCreateProperty(t, store, domain.Property{Name: "Flat", Price: decimal.NewFromInt(price), Year: 2000})
	}

	filter := domain.NewPropertyFilter()
	filter.SortBy, filter.SortDirection = "price", "asc"
	filter.PageSize = 2

	result, err := uc.Execute(context.Background(), filter)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var prices []int64
	for _, p := range result.Properties {
		prices = append(prices, p.Price.IntPart())
	}
	if !reflect.DeepEqual(prices, []int64{100, 200}) {
		t.Fatalf("prices = %v", prices)
	}
	if result.TotalCount != 3 || result.TotalPages != 2 || !result.HasNextPage || result.HasPreviousPage {
		t.Fatalf("unexpected metadata: %+v", result)
	}
	if spy.lastWindow != (domain.PageWindow{Offset: 0, Limit: 2}) {
		t.Fatalf("window = %+v", spy.lastWindow)
	}
	if !spy.lastPredicate.IsMatchAll() {
		t.Fatalf("expected match-all predicate, got %+v", spy.lastPredicate)
	}
}

func TestFilterBuildsConjunction(t *testing.T) {
	_, spy, uc := newFilterFixture(t)

	filter := domain.NewPropertyFilter()
	filter.Name = "Villa"
	filter.Address = "   "
	minPrice := decimal.NewFromInt(100)
	filter.MinPrice = &minPrice
	minYear := 1990
	filter.MinYear = &minYear
	filter.OwnerID = "owner-1"
	filter.Page = 3
	filter.PageSize = 5
	filter.SortBy = "bogus"

	// неизвестный sortBy отклоняется до обращения к хранилищу
	if _, err := uc.Execute(context.Background(), filter); err == nil {
		t.Fatal("expected validation error for unknown sortBy")
	}
	if spy.countCalls != 0 {
		t.Fatal("store must not be queried for an invalid filter")
	}

	filter.SortBy = "Year"
	if _, err := uc.Execute(context.Background(), filter); err != nil {
		t.Fatal(err)
	}

	want := []domain.Condition{
		{Field: domain.FieldName, Op: domain.OpContains, Value: "Villa"},
		{Field: domain.FieldPrice, Op: domain.OpGte, Value: minPrice},
		{Field: domain.FieldYear, Op: domain.OpGte, Value: 1990},
		{Field: domain.FieldOwnerID, Op: domain.OpEq, Value: "owner-1"},
	}
	if !reflect.DeepEqual(spy.lastPredicate.Conditions, want) {
		t.Fatalf("conditions = %+v", spy.lastPredicate.Conditions)
	}
	if spy.lastOrder != (domain.SortOrder{Field: domain.FieldYear}) {
		t.Fatalf("order = %+v", spy.lastOrder)
	}
	if spy.lastWindow != (domain.PageWindow{Offset: 10, Limit: 5}) {
		t.Fatalf("window = %+v", spy.lastWindow)
	}
}

func TestFilterRejectsInvertedRangesWithoutStoreAccess(t *testing.T) {
	_, spy, uc := newFilterFixture(t)

	filter := domain.NewPropertyFilter()
	minYear, maxYear := 2020, 2000
	filter.MinYear, filter.MaxYear = &minYear, &maxYear
	filter.SortDirection = "sideways"

	_, err := uc.Execute(context.Background(), filter)

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"MinYear cannot be greater than MaxYear",
		"SortDirection must be either 'asc' or 'desc'",
	}
	if !reflect.DeepEqual(validationErr.Problems, want) {
		t.Fatalf("problems = %q", validationErr.Problems)
	}
	if spy.countCalls != 0 || spy.findCalls != 0 {
		t.Fatal("store must not be touched")
	}
}

func TestFilterOwnerNameWithoutMatchesShortCircuits(t *testing.T) {
	store, spy, uc := newFilterFixture(t)
	if _, err := store.Owners.Create(context.Background(), domain.Owner{Name: "Alice"}); err != nil {
		t.Fatal(err)
	}
	mustCreateProperty(t, store, domain.Property{Name: "Any"})

	filter := domain.NewPropertyFilter()
	filter.OwnerName = "bob"

	result, err := uc.Execute(context.Background(), filter)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalCount != 0 || len(result.Properties) != 0 || result.TotalPages != 0 || result.HasNextPage {
		t.Fatalf("expected empty page, got %+v", result)
	}
	if spy.countCalls != 0 || spy.findCalls != 0 {
		t.Fatalf("count=%d find=%d, want no property store calls", spy.countCalls, spy.findCalls)
	}
}

func TestFilterOwnerNameResolvesToOwnerIDs(t *testing.T) {
	store, spy, uc := newFilterFixture(t)
	ctx := context.Background()

	alice, _ := store.Owners.Create(ctx, domain.Owner{Name: "Alice Cooper"})
	bob, _ := store.Owners.Create(ctx, domain.Owner{Name: "Bob"})
	mustCreateProperty(t, store, domain.Property{Name: "A", OwnerID: alice.ID})
	mustCreateProperty(t, store, domain.Property{Name: "B", OwnerID: bob.ID})

	filter := domain.NewPropertyFilter()
	filter.OwnerName = "COOPER"

	result, err := uc.Execute(ctx, filter)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalCount != 1 || result.Properties[0].OwnerID != alice.ID {
		t.Fatalf("unexpected result: %+v", result)
	}
	last := spy.lastPredicate.Conditions[len(spy.lastPredicate.Conditions)-1]
	if last.Field != domain.FieldOwnerID || last.Op != domain.OpIn {
		t.Fatalf("expected ownerId IN condition, got %+v", last)
	}
}

type failingOwnerStore struct {
	port.OwnerStoragePort
}

func (failingOwnerStore) FindIDsByNameSubstring(ctx context.Context, text string) ([]string, error) {
	return nil, errors.New("owners unavailable")
}

func TestFilterWrapsStoreErrors(t *testing.T) {
	store := memory.NewStore()

	filter := domain.NewPropertyFilter()
	filter.OwnerName = "x"
	_, err := NewFilterPropertiesUseCase(failingOwnerStore{store.Owners}, store.Properties).Execute(context.Background(), filter)
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError from owner store, got %v", err)
	}

	spy := &spyPropertyStore{PropertyStoragePort: store.Properties, err: errors.New("timeout")}
	_, err = NewFilterPropertiesUseCase(store.Owners, spy).Execute(context.Background(), domain.NewPropertyFilter())
	if !errors.As(err, &storeErr) || storeErr.Op != "count properties" {
		t.Fatalf("expected StoreError from count, got %v", err)
	}
	if spy.findCalls != 0 {
		t.Fatal("find must not run after a failed count")
	}
}
