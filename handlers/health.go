package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/middleware"
)

// CSRFToken hands the browser the anti-forgery token to echo in X-CSRF-Token.
func (h *Handler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	response := struct {
		CSRFToken string `json:"csrfToken"`
	}{
		CSRFToken: middleware.CSRFToken(r),
	}

	helpers.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	payload := map[string]any{
		"status": "ok",
	}

	if h.health != nil {
		if err := h.health.Ping(ctx); err != nil {
			h.logger.Error("health probe failed", "error", err)
			status = http.StatusServiceUnavailable
			payload["status"] = "degraded"
		}
	}

	helpers.WriteJSON(w, status, payload)
}
