package rest

import (
	"net/http"
	"property-service/internal/contextkeys"
	"property-service/internal/contracts"
	"property-service/internal/core/port"
	usecases_port "property-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PropertiesHandler struct {
	propertiesUC usecases_port.PropertiesUseCase
	findUC       usecases_port.FindPropertiesUseCase
}

func NewPropertiesHandler(propertiesUC usecases_port.PropertiesUseCase, findUC usecases_port.FindPropertiesUseCase) *PropertiesHandler {
	return &PropertiesHandler{propertiesUC: propertiesUC, findUC: findUC}
}

// Filter - GET /api/properties/filter
func (h *PropertiesHandler) Filter(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	filter, err := parsePropertyFilter(r.URL.Query())
	if err != nil {
		logger.Warn("Invalid filter parameters", port.Fields{"error": err.Error()})
		respondWithError(w, r, err, "An error occurred while filtering properties")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":   "FilterProperties",
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
	handlerLogger.Info("Processing request", nil)

	page, err := h.findUC.Execute(r.Context(), filter)
	if err != nil {
		respondWithError(w, r, err, "An error occurred while filtering properties")
		return
	}

	handlerLogger.Info("Successfully filtered properties", port.Fields{"total_count": page.TotalCount})
	RespondWithJSON(w, http.StatusOK, newPropertyFilterResponse(page))
}

func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertiesUC.List(r.Context())
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving properties")
		return
	}
	RespondWithJSON(w, http.StatusOK, newPropertyDetailsResponses(properties))
}

func (h *PropertiesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	property, err := h.propertiesUC.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving the property")
		return
	}
	RespondWithJSON(w, http.StatusOK, newPropertyDetailsResponse(*property))
}

func (h *PropertiesHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertiesUC.ListByOwnerID(r.Context(), chi.URLParam(r, "ownerId"))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving properties by owner")
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(properties, newPropertyResponse))
}

func (h *PropertiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PropertyRequest
	if err := decodeBody(w, r, contracts.PropertyRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while creating the property")
		return
	}

	property, err := h.propertiesUC.Create(r.Context(), req.toDomain(""))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while creating the property")
		return
	}

	w.Header().Set("Location", "/api/properties/"+property.ID)
	RespondWithJSON(w, http.StatusCreated, newPropertyResponse(*property))
}

func (h *PropertiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req PropertyRequest
	if err := decodeBody(w, r, contracts.PropertyRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the property")
		return
	}

	if err := h.propertiesUC.Update(r.Context(), req.toDomain(chi.URLParam(r, "id"))); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.propertiesUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, r, err, "An error occurred while deleting the property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
