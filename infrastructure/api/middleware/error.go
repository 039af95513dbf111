package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
)

// JSONAPIError represents a JSON:API error object.
type JSONAPIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// JSONAPIErrorResponse wraps JSON:API error objects.
type JSONAPIErrorResponse struct {
	Errors []JSONAPIError `json:"errors"`
}

// WriteError maps an application error to an HTTP status and writes a
// JSON:API error response.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	title := "Internal Server Error"

	var transition task.ErrInvalidTransition
	switch {
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		title = "Not Found"
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		title = "Validation Error"
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		title = "Forbidden"
	case errors.As(err, &transition), errors.Is(err, employee.ErrTerminalStage):
		status = http.StatusConflict
		title = "Conflict"
	}

	correlationID := GetCorrelationID(r.Context())

	if logger != nil {
		logger.Error("request error",
			"correlation_id", correlationID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{
			{
				Status: http.StatusText(status),
				Title:  title,
				Detail: err.Error(),
				ID:     correlationID,
			},
		},
	}

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
