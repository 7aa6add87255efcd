package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"property-service/internal/contextkeys"
	"property-service/internal/contracts"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

const maxBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError переводит ошибки ядра в HTTP-статусы:
// ValidationError -> 400, ErrNotFound -> 404, остальное -> 500 с message и error.
func respondWithError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": validationErr.Problems})
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "Resource not found")
	default:
		contextkeys.LoggerFromContext(r.Context()).Error(message, err, port.Fields{"path": r.URL.Path})
		RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"message": message,
			"error":   err.Error(),
		})
	}
}

// decodeBody проверяет тело запроса по JSON Schema и только потом разбирает его в dst
func decodeBody(w http.ResponseWriter, r *http.Request, schemaKey string, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.NewValidationError([]string{"Request body is too large or unreadable"})
	}
	if err := contracts.ValidateRequest(schemaKey, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError([]string{fmt.Sprintf("Request body does not match the expected shape: %v", err)})
	}
	return nil
}
