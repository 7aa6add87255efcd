package rest

import (
	"errors"
	"net/http"
	"property-service/internal/contextkeys"
	"property-service/internal/contracts"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	usecases_port "property-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PropertyTracesHandler struct {
	tracesUC usecases_port.PropertyTracesUseCase
}

func NewPropertyTracesHandler(tracesUC usecases_port.PropertyTracesUseCase) *PropertyTracesHandler {
	return &PropertyTracesHandler{tracesUC: tracesUC}
}

func (h *PropertyTracesHandler) List(w http.ResponseWriter, r *http.Request) {
	traces, err := h.tracesUC.List(r.Context())
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving property traces")
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(traces, newPropertyTraceResponse))
}

func (h *PropertyTracesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	trace, err := h.tracesUC.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving the property trace")
		return
	}
	RespondWithJSON(w, http.StatusOK, newPropertyTraceResponse(*trace))
}

func (h *PropertyTracesHandler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	traces, err := h.tracesUC.ListByPropertyID(r.Context(), chi.URLParam(r, "propertyId"))
	if errors.Is(err, domain.ErrPropertyNotFound) {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving property traces")
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(traces, newPropertyTraceResponse))
}

func (h *PropertyTracesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PropertyTraceRequest
	if err := decodeBody(w, r, contracts.PropertyTraceRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while creating the property trace")
		return
	}

	trace, err := h.tracesUC.Create(r.Context(), req.toDomain(""))
	if errors.Is(err, domain.ErrPropertyNotFound) {
		WriteJSONError(w, http.StatusBadRequest, "Property not found")
		return
	}
	if err != nil {
		respondWithError(w, r, err, "An error occurred while creating the property trace")
		return
	}

	w.Header().Set("Location", "/api/propertytraces/"+trace.ID)
	RespondWithJSON(w, http.StatusCreated, newPropertyTraceResponse(*trace))
}

func (h *PropertyTracesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req PropertyTraceRequest
	if err := decodeBody(w, r, contracts.PropertyTraceRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the property trace")
		return
	}

	err := h.tracesUC.Update(r.Context(), req.toDomain(chi.URLParam(r, "id")))
	if errors.Is(err, domain.ErrPropertyNotFound) {
		WriteJSONError(w, http.StatusBadRequest, "Property not found")
		return
	}
	if err != nil {
		respondWithError(w, r, err, "An error occurred while updating the property trace")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyTracesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tracesUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, r, err, "An error occurred while deleting the property trace")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteByProperty удаляет всю историю объекта
func (h *PropertyTracesHandler) DeleteByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyId")

	deleted, err := h.tracesUC.DeleteByPropertyID(r.Context(), propertyID)
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	case errors.Is(err, domain.ErrNoPropertyTraces):
		WriteJSONError(w, http.StatusNotFound, "No property traces found for this property")
		return
	case err != nil:
		respondWithError(w, r, err, "An error occurred while deleting property traces")
		return
	}

	contextkeys.LoggerFromContext(r.Context()).Info("Property traces deleted", port.Fields{
		"property_id": propertyID,
		"deleted":     deleted,
	})
	w.WriteHeader(http.StatusNoContent)
}
