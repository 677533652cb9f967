package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/pkg/apierr"
	"github.com/tasktrack/tasktrack/pkg/slogx"
)

// writeServiceError maps service-layer errors onto the API error
// envelope. Anything unrecognized is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		apierr.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		apierr.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrValidation):
		apierr.ErrValidation.WithDescription(err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		apierr.ErrServerError.WriteError(w)
	}
}
