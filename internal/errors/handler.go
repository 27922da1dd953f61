package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// HandleError renders err as a JSON error envelope. Plain errors are
// wrapped as internal server errors so handlers can return them directly.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := FromError(err)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("error_code", apiErr.ErrorCode),
			slog.String("error", apiErr.Message),
			slog.String("path", r.URL.Path),
		)
	}

	if renderErr := render.Render(w, r, NewErrorResponse(apiErr)); renderErr != nil {
		WriteError(w, apiErr)
	}
}

// FromError converts any error into an APIError, passing through
// errors that already are one.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error", err.Error())
}
