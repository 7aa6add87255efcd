package rest

import (
	"property-service/internal/core/domain"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// деньги в JSON - числа, а не строки
	decimal.MarshalJSONWithoutQuotes = true
}

type OwnerRequest struct {
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Photo    string     `json:"photo"`
	Birthday *time.Time `json:"birthday"`
}

func (req OwnerRequest) toDomain(id string) domain.Owner {
	owner := domain.Owner{ID: id, Name: req.Name, Address: req.Address, Photo: req.Photo}
	if req.Birthday != nil {
		owner.Birthday = req.Birthday.UTC()
	}
	return owner
}

type OwnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Photo     string    `json:"photo"`
	Birthday  time.Time `json:"birthday"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newOwnerResponse(o domain.Owner) OwnerResponse {
	return OwnerResponse{
		ID:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		Photo:     o.Photo,
		Birthday:  o.Birthday,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

type PropertyRequest struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Price        decimal.Decimal `json:"price"`
	CodeInternal string          `json:"codeInternal"`
	Year         int             `json:"year"`
	OwnerID      string          `json:"ownerId"`
}

func (req PropertyRequest) toDomain(id string) domain.Property {
	return domain.Property{
		ID:           id,
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		OwnerID:      req.OwnerID,
	}
}

type PropertyResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Price        decimal.Decimal `json:"price"`
	CodeInternal string          `json:"codeInternal"`
	Year         int             `json:"year"`
	OwnerID      string          `json:"ownerId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func newPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		OwnerID:      p.OwnerID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PropertyDetailsResponse - объект с изображениями, историей и владельцем (null, если не найден)
type PropertyDetailsResponse struct {
	PropertyResponse
	Images         []PropertyImageResponse `json:"images"`
	PropertyTraces []PropertyTraceResponse `json:"propertyTraces"`
	Owner          *OwnerResponse          `json:"owner"`
}

func newPropertyDetailsResponse(d domain.PropertyDetails) PropertyDetailsResponse {
	resp := PropertyDetailsResponse{
		PropertyResponse: newPropertyResponse(d.Property),
		Images:           make([]PropertyImageResponse, 0, len(d.Images)),
		PropertyTraces:   make([]PropertyTraceResponse, 0, len(d.Traces)),
	}
	for _, img := range d.Images {
		resp.Images = append(resp.Images, newPropertyImageResponse(img))
	}
	for _, tr := range d.Traces {
		resp.PropertyTraces = append(resp.PropertyTraces, newPropertyTraceResponse(tr))
	}
	if d.Owner != nil {
		owner := newOwnerResponse(*d.Owner)
		resp.Owner = &owner
	}
	return resp
}

func newPropertyDetailsResponses(items []domain.PropertyDetails) []PropertyDetailsResponse {
	out := make([]PropertyDetailsResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newPropertyDetailsResponse(item))
	}
	return out
}

// PropertyFilterResponse - ответ GET /api/properties/filter
type PropertyFilterResponse struct {
	Properties      []PropertyDetailsResponse `json:"properties"`
	TotalCount      int                       `json:"totalCount"`
	Page            int                       `json:"page"`
	PageSize        int                       `json:"pageSize"`
	TotalPages      int                       `json:"totalPages"`
	HasNextPage     bool                      `json:"hasNextPage"`
	HasPreviousPage bool                      `json:"hasPreviousPage"`
}

func newPropertyFilterResponse(page *domain.PropertyDetailsPage) PropertyFilterResponse {
	return PropertyFilterResponse{
		Properties:      newPropertyDetailsResponses(page.Properties),
		TotalCount:      page.TotalCount,
		Page:            page.Page,
		PageSize:        page.PageSize,
		TotalPages:      page.TotalPages,
		HasNextPage:     page.HasNextPage,
		HasPreviousPage: page.HasPreviousPage,
	}
}

type PropertyImageRequest struct {
	PropertyID string `json:"propertyId"`
	File       string `json:"file"`
	Enabled    *bool  `json:"enabled"`
}

func (req PropertyImageRequest) toDomain(id string) domain.PropertyImage {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	return domain.PropertyImage{ID: id, PropertyID: req.PropertyID, File: req.File, Enabled: enabled}
}

type PropertyImageResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	File       string    `json:"file"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newPropertyImageResponse(i domain.PropertyImage) PropertyImageResponse {
	return PropertyImageResponse{
		ID:         i.ID,
		PropertyID: i.PropertyID,
		File:       i.File,
		Enabled:    i.Enabled,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

type PropertyTraceRequest struct {
	PropertyID string          `json:"propertyId"`
	DateSale   time.Time       `json:"dateSale"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Tax        decimal.Decimal `json:"tax"`
}

func (req PropertyTraceRequest) toDomain(id string) domain.PropertyTrace {
	return domain.PropertyTrace{
		ID:         id,
		PropertyID: req.PropertyID,
		DateSale:   req.DateSale.UTC(),
		Name:       req.Name,
		Value:      req.Value,
		Tax:        req.Tax,
	}
}

type PropertyTraceResponse struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"propertyId"`
	DateSale   time.Time       `json:"dateSale"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Tax        decimal.Decimal `json:"tax"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func newPropertyTraceResponse(t domain.PropertyTrace) PropertyTraceResponse {
	return PropertyTraceResponse{
		ID:         t.ID,
		PropertyID: t.PropertyID,
		DateSale:   t.DateSale,
		Name:       t.Name,
		Value:      t.Value,
		Tax:        t.Tax,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func mapSlice[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
