package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"property-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

func seedProperties(t *testing.T, s *PropertyStore, props ...domain.Property) []domain.Property {
	t.Helper()
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		created, err := s.Create(context.Background(), p)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		out = append(out, *created)
	}
	return out
}

func names(props []domain.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOwnerStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Owners

	created, err := store.Create(ctx, domain.Owner{Name: "John Smith"})
	if err != nil || created.ID == "" {
		t.Fatalf("Create: %v, id %q", err, created.ID)
	}

	created.Address = "Oak Street"
	if err := store.Update(ctx, *created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got.Address != "Oak Street" {
		t.Fatalf("GetByID: %v, %+v", err, got)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Update(ctx, *created); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update of missing owner, got %v", err)
	}
}

func TestOwnerStoreFindIDsByNameSubstringIgnoresCase(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Owners
	john, _ := store.Create(ctx, domain.Owner{Name: "John Smith"})
	_, _ = store.Create(ctx, domain.Owner{Name: "Sarah Johnson"})
	_, _ = store.Create(ctx, domain.Owner{Name: "Maria Rodriguez"})

	ids, err := store.FindIDsByNameSubstring(ctx, "SMITH")
	if err != nil {
		t.Fatalf("FindIDsByNameSubstring: %v", err)
	}
	if len(ids) != 1 || ids[0] != john.ID {
		t.Fatalf("expected only John, got %v", ids)
	}

	ids, _ = store.FindIDsByNameSubstring(ctx, "nobody")
	if ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", ids)
	}
}

func TestPropertyStoreFindAppliesPredicateSortAndWindow(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Properties
	seedProperties(t, store,
		domain.Property{Name: "Villa (Sea)", Price: decimal.NewFromInt(300), Year: 2019},
		domain.Property{Name: "Loft", Price: decimal.NewFromInt(100), Year: 2021},
		domain.Property{Name: "villa garden", Price: decimal.NewFromInt(200), Year: 2020},
	)

	tests := []struct {
		name      string
		predicate domain.Predicate
		order     domain.SortOrder
		window    domain.PageWindow
		want      []string
		wantCount int
	}{
		{
			name:      "match all by price asc",
			predicate: domain.MatchAll(),
			order:     domain.SortOrder{Field: domain.FieldPrice, Ascending: true},
			window:    domain.PageWindow{Offset: 0, Limit: 2},
			want:      []string{"Loft", "villa garden"},
			wantCount: 3,
		},
		{
			name: "contains ignores case",
			predicate: domain.MatchAll().And(domain.Condition{
				Field: domain.FieldName, Op: domain.OpContains, Value: "VILLA",
			}),
			order:     domain.SortOrder{Field: domain.FieldYear, Ascending: true},
			window:    domain.PageWindow{Limit: 10},
			want:      []string{"Villa (Sea)", "villa garden"},
			wantCount: 2,
		},
		{
			name: "pattern characters are literal",
			predicate: domain.MatchAll().And(domain.Condition{
				Field: domain.FieldName, Op: domain.OpContains, Value: "(sea)",
			}),
			window:    domain.PageWindow{Limit: 10},
			want:      []string{"Villa (Sea)"},
			wantCount: 1,
		},
		{
			name: "inclusive price range",
			predicate: domain.MatchAll().And(
				domain.Condition{Field: domain.FieldPrice, Op: domain.OpGte, Value: decimal.NewFromInt(100)},
				domain.Condition{Field: domain.FieldPrice, Op: domain.OpLte, Value: decimal.NewFromInt(200)},
			),
			order:     domain.SortOrder{Field: domain.FieldPrice, Ascending: false},
			window:    domain.PageWindow{Limit: 10},
			want:      []string{"villa garden", "Loft"},
			wantCount: 2,
		},
		{
			name:      "offset past the end",
			predicate: domain.MatchAll(),
			window:    domain.PageWindow{Offset: 5, Limit: 10},
			want:      []string{},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := store.Count(ctx, tt.predicate)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if count != tt.wantCount {
				t.Fatalf("count = %d, want %d", count, tt.wantCount)
			}
			got, err := store.Find(ctx, tt.predicate, tt.order, tt.window)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if !equalStrings(names(got), tt.want) {
				t.Fatalf("got %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestPropertyStoreSortIsStableForEqualKeys(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Properties
	seedProperties(t, store,
		domain.Property{Name: "first", Year: 2000},
		domain.Property{Name: "second", Year: 2000},
		domain.Property{Name: "third", Year: 2000},
	)

	got, _ := store.Find(ctx, domain.MatchAll(), domain.SortOrder{Field: domain.FieldYear, Ascending: true}, domain.PageWindow{Limit: 10})
	if !equalStrings(names(got), []string{"first", "second", "third"}) {
		t.Fatalf("equal keys reordered: %v", names(got))
	}
}

func TestPropertyStoreOwnerIDInAndCreatedAtRange(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Properties
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProperties(t, store,
		domain.Property{Name: "a", OwnerID: "o1", CreatedAt: base},
		domain.Property{Name: "b", OwnerID: "o2", CreatedAt: base.AddDate(0, 0, 1)},
		domain.Property{Name: "c", OwnerID: "o3", CreatedAt: base.AddDate(0, 0, 2)},
	)

	predicate := domain.MatchAll().And(
		domain.Condition{Field: domain.FieldOwnerID, Op: domain.OpIn, Value: []string{"o1", "o2", "o3"}},
		domain.Condition{Field: domain.FieldCreatedAt, Op: domain.OpGte, Value: base.AddDate(0, 0, 1)},
		domain.Condition{Field: domain.FieldCreatedAt, Op: domain.OpLte, Value: base.AddDate(0, 0, 2)},
	)
	got, err := store.Find(ctx, predicate, domain.SortOrder{Field: domain.FieldCreatedAt}, domain.PageWindow{Limit: 10})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !equalStrings(names(got), []string{"c", "b"}) {
		t.Fatalf("got %v", names(got))
	}
}

func TestPropertyStoreRejectsMistypedCondition(t *testing.T) {
	store := NewStore().Properties
	seedProperties(t, store, domain.Property{Name: "a"})

	predicate := domain.MatchAll().And(domain.Condition{Field: domain.FieldYear, Op: domain.OpGte, Value: "2000"})
	if _, err := store.Count(context.Background(), predicate); err == nil {
		t.Fatal("expected error for mistyped year bound")
	}
}

func TestImageAndTraceStores(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, _ = s.Images.Create(ctx, domain.PropertyImage{PropertyID: "p1", File: "a.jpg", Enabled: true})
	_, _ = s.Images.Create(ctx, domain.PropertyImage{PropertyID: "p1", File: "b.jpg", Enabled: false})
	_, _ = s.Images.Create(ctx, domain.PropertyImage{PropertyID: "p2", File: "c.jpg", Enabled: true})

	images, _ := s.Images.ListEnabledByPropertyID(ctx, "p1")
	if len(images) != 1 || images[0].File != "a.jpg" {
		t.Fatalf("expected only enabled image of p1, got %+v", images)
	}

	_, _ = s.Traces.Create(ctx, domain.PropertyTrace{PropertyID: "p1", Name: "sale 1"})
	_, _ = s.Traces.Create(ctx, domain.PropertyTrace{PropertyID: "p2", Name: "sale 2"})
	_, _ = s.Traces.Create(ctx, domain.PropertyTrace{PropertyID: "p1", Name: "sale 3"})

	deleted, err := s.Traces.DeleteByPropertyID(ctx, "p1")
	if err != nil || deleted != 2 {
		t.Fatalf("DeleteByPropertyID = %d, %v", deleted, err)
	}
	rest, _ := s.Traces.List(ctx)
	if len(rest) != 1 || rest[0].Name != "sale 2" {
		t.Fatalf("unexpected remaining traces: %+v", rest)
	}
}

func TestWindowOutOfRangeOffsetIsEmpty(t *testing.T) {
	items := []domain.Property{{ID: "a"}, {ID: "b"}}
	for _, w := range []domain.PageWindow{
		{Offset: -200, Limit: 100},
		{Offset: 2, Limit: 10},
	} {
		if got := window(items, w); len(got) != 0 {
			t.Fatalf("window(%+v) = %v, want empty", w, got)
		}
	}
}
