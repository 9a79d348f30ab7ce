package helpers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/UmangSachdeva/StaffPortal/apperror"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError renders err using its taxonomy kind. Internal failures are logged
// with their cause and reported to the caller without detail.
func WriteError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	kind := apperror.KindOf(err)

	if kind == apperror.KindInternal {
		if logger != nil {
			logger.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
		}
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	WriteJSON(w, kind.HTTPStatus(), MessageResponse{Message: apperror.MessageOf(err)})
}
