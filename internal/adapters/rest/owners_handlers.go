package rest

import (
	"net/http"
	"property-service/internal/contextkeys"
	"property-service/internal/contracts"
	"property-service/internal/core/port"
	usecases_port "property-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type OwnersHandler struct {
	ownersUC usecases_port.OwnersUseCase
}

func NewOwnersHandler(ownersUC usecases_port.OwnersUseCase) *OwnersHandler {
	return &OwnersHandler{ownersUC: ownersUC}
}

func (h *OwnersHandler) List(w http.ResponseWriter, r *http.Request) {
	owners, err := h.ownersUC.List(r.Context())
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving owners")
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(owners, newOwnerResponse))
}

func (h *OwnersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownersUC.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while retrieving the owner")
		return
	}
	RespondWithJSON(w, http.StatusOK, newOwnerResponse(*owner))
}

func (h *OwnersHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req OwnerRequest
	if err := decodeBody(w, r, contracts.OwnerRequestV1, &req); err != nil {
		logger.Warn("Invalid owner body", port.Fields{"error": err.Error()})
		respondWithError(w, r, err, "An error occurred while creating the owner")
		return
	}

	owner, err := h.ownersUC.Create(r.Context(), req.toDomain(""))
	if err != nil {
		respondWithError(w, r, err, "An error occurred while creating the owner")
		return
	}

	w.Header().Set("Location", "/api/owners/"+owner.ID)
	RespondWithJSON(w, http.StatusCreated, newOwnerResponse(*owner))
}

func (h *OwnersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req OwnerRequest
	if err := decodeBody(w, r, contracts.OwnerRequestV1, &req); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the owner")
		return
	}

	if err := h.ownersUC.Update(r.Context(), req.toDomain(chi.URLParam(r, "id"))); err != nil {
		respondWithError(w, r, err, "An error occurred while updating the owner")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OwnersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ownersUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, r, err, "An error occurred while deleting the owner")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
