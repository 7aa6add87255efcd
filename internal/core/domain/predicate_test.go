package domain

import (
	"errors"
	"testing"
)

func TestParseSortOrder(t *testing.T) {
	cases := []struct {
		sortBy, direction string
		want              SortOrder
	}{
		{"", "", SortOrder{Field: FieldCreatedAt}},
		{"Price", "ASC", SortOrder{Field: FieldPrice, Ascending: true}},
		{"year", "desc", SortOrder{Field: FieldYear}},
		{"address", "sideways", SortOrder{Field: FieldAddress}},
		{"bogus", "asc", SortOrder{Field: FieldCreatedAt, Ascending: true}},
	}
	for _, tc := range cases {
		if got := ParseSortOrder(tc.sortBy, tc.direction); got != tc.want {
			t.Errorf("ParseSortOrder(%q, %q) = %+v, want %+v", tc.sortBy, tc.direction, got, tc.want)
		}
	}
}

func TestPredicateAndDoesNotMutate(t *testing.T) {
	base := MatchAll().And(Condition{Field: FieldName, Op: OpContains, Value: "a"})
	extended := base.And(Condition{Field: FieldYear, Op: OpGte, Value: 2000})

	if len(base.Conditions) != 1 || len(extended.Conditions) != 2 {
		t.Fatalf("base=%d extended=%d", len(base.Conditions), len(extended.Conditions))
	}
	if !MatchAll().IsMatchAll() || extended.IsMatchAll() {
		t.Fatal("IsMatchAll mismatch")
	}
}

func TestWrapStoreError(t *testing.T) {
	if WrapStoreError("op", nil) != nil {
		t.Fatal("nil must stay nil")
	}
	if err := WrapStoreError("op", ErrNotFound); err != ErrNotFound {
		t.Fatalf("ErrNotFound must pass through, got %v", err)
	}

	cause := errors.New("connection reset")
	wrapped := WrapStoreError("count", cause)
	var storeErr *StoreError
	if !errors.As(wrapped, &storeErr) || storeErr.Op != "count" || !errors.Is(wrapped, cause) {
		t.Fatalf("unexpected wrap: %v", wrapped)
	}
	if again := WrapStoreError("find", wrapped); again != wrapped {
		t.Fatal("already wrapped errors must not be wrapped twice")
	}
}

func TestPropertyTraceProblems(t *testing.T) {
	var empty PropertyTrace
	if got := len(empty.Problems()); got != 3 {
		t.Fatalf("expected 3 problems for an empty trace, got %d: %v", got, empty.Problems())
	}
}
