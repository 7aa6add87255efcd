package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	logger_adapter "property-service/internal/adapters/logger"
	"property-service/internal/adapters/memory"
	"property-service/internal/core/domain"
	"property-service/internal/core/usecase"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	store   *memory.Store
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	clock := func() time.Time { return fixedNow }
	assembler := usecase.NewPropertyDetailsAssembler(store.Owners, store.Images, store.Traces)
	filterUC := usecase.NewFilterPropertiesUseCase(store.Owners, store.Properties)

	handlers := Handlers{
		Owners:     NewOwnersHandler(usecase.NewOwnersUseCase(store.Owners, clock)),
		Properties: NewPropertiesHandler(usecase.NewPropertiesUseCase(store.Properties, assembler, nil, clock), usecase.NewFindPropertiesUseCase(filterUC, assembler)),
		Images:     NewPropertyImagesHandler(usecase.NewPropertyImagesUseCase(store.Images, clock)),
		Traces:     NewPropertyTracesHandler(usecase.NewPropertyTracesUseCase(store.Traces, store.Properties, nil, clock)),
		Health:     NewHealthHandler(nil),
	}
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})

	return &testAPI{store: store, handler: NewRouter([]string{"*"}, handlers, logger)}
}

func (a *testAPI) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) addProperty(t *testing.T, p domain.Property) domain.Property {
	t.Helper()
	created, err := a.store.Properties.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return *created
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestFilterPaginatesAndSorts(t *testing.T) {
	api := newTestAPI(t)
	for i, price := range []int64{300, 100, 200} {
		api.addProperty(t, domain.Property{
			Name:      "Flat",
			Address:   "Main st",
			Price:     decimal.NewFromInt(price),
			Year:      2000 + i,
			CreatedAt: fixedNow.Add(time.Duration(i) * time.Hour),
		})
	}

	rec := api.do(t, http.MethodGet, "/api/properties/filter?SortBy=PRICE&sortdirection=Asc&pageSize=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp PropertyFilterResponse
	decodeJSON(t, rec, &resp)

	if resp.TotalCount != 3 || resp.TotalPages != 2 || !resp.HasNextPage || resp.HasPreviousPage {
		t.Fatalf("unexpected pagination: %+v", resp)
	}
	var prices []string
	for _, p := range resp.Properties {
		prices = append(prices, p.Price.String())
	}
	if want := []string{"100", "200"}; !reflect.DeepEqual(prices, want) {
		t.Fatalf("prices = %v, want %v", prices, want)
	}
	if !strings.Contains(rec.Body.String(), `"price":100`) {
		t.Fatalf("price must be a JSON number: %s", rec.Body.String())
	}
}

func TestFilterCollectsAllProblems(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/properties/filter?minPrice=abc&minYear=2000&maxYear=1990&sortBy=color", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Errors []string `json:"errors"`
	}
	decodeJSON(t, rec, &resp)

	want := []string{
		"MinPrice must be a valid number",
		"MinYear cannot be greater than MaxYear",
		"SortBy must be one of: name, price, year, address, createdAt",
	}
	if !reflect.DeepEqual(resp.Errors, want) {
		t.Fatalf("errors = %v, want %v", resp.Errors, want)
	}
}

func TestFilterRejectsRepeatedParameters(t *testing.T) {
	api := newTestAPI(t)
	api.addProperty(t, domain.Property{Name: "Flat", Address: "x", Price: decimal.NewFromInt(1), Year: 2000})

	for i := 0; i < 20; i++ {
		rec := api.do(t, http.MethodGet, "/api/properties/filter?MinPrice=5&minPrice=0&page=1&PAGE=2", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("run %d: status = %d, body = %s", i, rec.Code, rec.Body.String())
		}
		var resp struct {
			Errors []string `json:"errors"`
		}
		decodeJSON(t, rec, &resp)
		want := []string{"MinPrice was supplied more than once", "Page was supplied more than once"}
		if !reflect.DeepEqual(resp.Errors, want) {
			t.Fatalf("run %d: errors = %v, want %v", i, resp.Errors, want)
		}
	}
}

func TestFilterRejectsPageThatOverflowsOffset(t *testing.T) {
	api := newTestAPI(t)
	api.addProperty(t, domain.Property{Name: "Flat", Address: "x", Year: 2000})

	rec := api.do(t, http.MethodGet, "/api/properties/filter?page=92233720368547760&pageSize=100", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Page") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestFilterUnknownOwnerNameReturnsEmptyPage(t *testing.T) {
	api := newTestAPI(t)
	api.addProperty(t, domain.Property{Name: "House", Address: "Oak st", Price: decimal.NewFromInt(10), Year: 1999})

	rec := api.do(t, http.MethodGet, "/api/properties/filter?ownerName=nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp PropertyFilterResponse
	decodeJSON(t, rec, &resp)
	if resp.TotalCount != 0 || len(resp.Properties) != 0 || resp.TotalPages != 0 {
		t.Fatalf("expected empty page, got %+v", resp)
	}
}

func TestPropertyDetailsAreEnriched(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	owner, err := api.store.Owners.Create(ctx, domain.Owner{Name: "Ann"})
	if err != nil {
		t.Fatal(err)
	}
	withOwner := api.addProperty(t, domain.Property{Name: "A", Address: "x", Year: 2001, OwnerID: owner.ID})
	orphan := api.addProperty(t, domain.Property{Name: "B", Address: "y", Year: 2002, OwnerID: "missing"})

	api.store.Images.Create(ctx, domain.PropertyImage{PropertyID: withOwner.ID, File: "on.jpg", Enabled: true})
	api.store.Images.Create(ctx, domain.PropertyImage{PropertyID: withOwner.ID, File: "off.jpg", Enabled: false})

	rec := api.do(t, http.MethodGet, "/api/properties/"+withOwner.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var details PropertyDetailsResponse
	decodeJSON(t, rec, &details)
	if details.Owner == nil || details.Owner.Name != "Ann" {
		t.Fatalf("owner not attached: %+v", details.Owner)
	}
	if len(details.Images) != 1 || details.Images[0].File != "on.jpg" {
		t.Fatalf("expected only enabled images, got %+v", details.Images)
	}
	if details.PropertyTraces == nil {
		t.Fatal("propertyTraces must be an empty list, not null")
	}

	rec = api.do(t, http.MethodGet, "/api/properties/"+orphan.ID, "")
	if !strings.Contains(rec.Body.String(), `"owner":null`) {
		t.Fatalf("dangling owner must be null: %s", rec.Body.String())
	}
}

func TestOwnerLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/owners", `{"name":"John","address":"Elm st","birthday":"1980-02-03T00:00:00Z"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created OwnerResponse
	decodeJSON(t, rec, &created)
	if loc := rec.Header().Get("Location"); loc != "/api/owners/"+created.ID {
		t.Fatalf("Location = %q", loc)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Fatalf("createdAt = %v", created.CreatedAt)
	}

	body := `{"name":"John","address":"Elm st","birthday":"1980-02-03T00:00:00Z"}`
	for i := 0; i < 2; i++ {
		if rec := api.do(t, http.MethodPut, "/api/owners/"+created.ID, body); rec.Code != http.StatusNoContent {
			t.Fatalf("update #%d status = %d", i, rec.Code)
		}
	}

	if rec := api.do(t, http.MethodDelete, "/api/owners/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/owners/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Resource not found") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreatePropertyRejectsInvalidBody(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"name":`},
		{name: "missing required", body: `{"name":"Flat"}`},
		{name: "negative price", body: `{"name":"Flat","address":"x","price":-1,"year":2000}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/properties", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Errors []string `json:"errors"`
			}
			decodeJSON(t, rec, &resp)
			if len(resp.Errors) == 0 {
				t.Fatal("expected at least one problem")
			}
		})
	}

	if all, _ := api.store.Properties.List(context.Background()); len(all) != 0 {
		t.Fatalf("invalid bodies must not be stored, got %d", len(all))
	}
}

func TestTracesRequireExistingProperty(t *testing.T) {
	api := newTestAPI(t)

	body := `{"propertyId":"%s","dateSale":"2023-01-02T00:00:00Z","name":"Sale","value":1000,"tax":50}`

	rec := api.do(t, http.MethodPost, "/api/propertytraces", strings.Replace(body, "%s", "ghost", 1))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Property not found") {
		t.Fatalf("create for unknown property: %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/propertytraces/property/ghost", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Property not found") {
		t.Fatalf("list for unknown property: %d %s", rec.Code, rec.Body.String())
	}

	property := api.addProperty(t, domain.Property{Name: "P", Address: "a", Year: 2010})

	rec = api.do(t, http.MethodDelete, "/api/propertytraces/property/"+property.ID, "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No property traces found for this property") {
		t.Fatalf("delete without traces: %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/propertytraces", strings.Replace(body, "%s", property.ID, 1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodDelete, "/api/propertytraces/property/"+property.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete by property status = %d", rec.Code)
	}
}

func TestImagesListByPropertyQuery(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/propertyimages", `{"propertyId":"p1","file":"a.jpg"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created PropertyImageResponse
	decodeJSON(t, rec, &created)
	if !created.Enabled {
		t.Fatal("enabled must default to true")
	}
	api.do(t, http.MethodPost, "/api/propertyimages", `{"propertyId":"p1","file":"b.jpg","enabled":false}`)
	api.do(t, http.MethodPost, "/api/propertyimages", `{"propertyId":"p2","file":"c.jpg"}`)

	var images []PropertyImageResponse
	decodeJSON(t, api.do(t, http.MethodGet, "/api/propertyimages?PropertyId=p1", ""), &images)
	if len(images) != 1 || images[0].File != "a.jpg" {
		t.Fatalf("images = %+v", images)
	}

	decodeJSON(t, api.do(t, http.MethodGet, "/api/propertyimages", ""), &images)
	if len(images) != 3 {
		t.Fatalf("expected all images, got %d", len(images))
	}
}

func TestTraceIDHeader(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Trace-ID", "5f0c2b8e-8d7e-4d0a-9a53-2c1b3f6f7a10")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Trace-ID"); got != "5f0c2b8e-8d7e-4d0a-9a53-2c1b3f6f7a10" {
		t.Fatalf("X-Trace-ID = %q", got)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"status":"ok"`)) {
		t.Fatalf("body = %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/health", "")
	if rec.Header().Get("X-Trace-ID") == "" {
		t.Fatal("expected generated trace id")
	}
}
