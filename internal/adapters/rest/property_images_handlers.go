package rest

import (
	"net/http"
	"property-service/internal/contracts"
	"property-service/internal/core/domain"
	usecases_port "property-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PropertyImagesHandler struct {
	imagesUC usecases_port.PropertyImagesUseCase
}

func NewPropertyImagesHandler(imagesUC usecases_port.PropertyImagesUseCase) *PropertyImagesHandler {
	return &PropertyImagesHandler{imagesUC: imagesUC}
}

// List - все изображения, либо только активные изображения объекта при ?propertyId=
func (h *PropertyImagesHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		images []domain.PropertyImage
		err    error
	)
	if propertyID, ok := newQueryValues(r.URL.Query()).get("propertyId"); ok {
		images, err = h.imagesUC.ListEnabledByPropertyID(r.Context(), propertyID)
	} else {
		images, err = h.imagesUC.List(r.Context())
	}
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving property images")
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(images, newPropertyImageResponse))
}

func (h *PropertyImagesHandler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	images, err := h.imagesUC.ListEnabledByPropertyID(r.Context(), chi.URLParam(r, "propertyId"))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving property images")
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(images, newPropertyImageResponse))
}

func (h *PropertyImagesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	image, err := h.imagesUC.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving the property image")
		return
	}
	RespondWithJSON(w, http.StatusOK, newPropertyImageResponse(*image))
}

func (h *PropertyImagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PropertyImageRequest
	if err := decodeBody(w, r, contracts.PropertyImageRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while creating the property image")
		return
	}

	image, err := h.imagesUC.Create(r.Context(), req.toDomain(""))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while creating the property image")
		return
	}

	w.Header().Set("Location", "/api/propertyimages/"+image.ID)
	RespondWithJSON(w, http.StatusCreated, newPropertyImageResponse(*image))
}

func (h *PropertyImagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req PropertyImageRequest
	if err := decodeBody(w, r, contracts.PropertyImageRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the property image")
		return
	}

	if err := h.imagesUC.Update(r.Context(), req.toDomain(chi.URLParam(r, "id"))); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the property image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.imagesUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, r, err, "An error occurred while deleting the property image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
