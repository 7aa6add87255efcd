package rest

import (
	"context"
	"net/http"
	"property-service/internal/contextkeys"
	"time"
)

// HealthChecker проверяет доступность хранилища
type HealthChecker func(ctx context.Context) error

type HealthHandler struct {
	check HealthChecker
}

// NewHealthHandler: check может быть nil (in-memory хранилище)
func NewHealthHandler(check HealthChecker) *HealthHandler {
	return &HealthHandler{check: check}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.check(ctx); err != nil {
			contextkeys.LoggerFromContext(r.Context()).Error("Health check failed", err, nil)
			RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
