package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/phexara/phexara-api/internal/pkg/logger"
	"github.com/phexara/phexara-api/internal/pkg/response"
)

// HandleError logs the failure with the request-scoped logger and sends
// {"error": message}. Upstream messages are passed through unchanged.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("error_message", message).
		Int("status_code", status)

	if err != nil {
		event = event.Err(err)
	}

	event.Msg("Request error")

	response.Error(w, status, message)
}

// HandleUpstreamError answers 500 with the upstream error text
func HandleUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	message := "Internal error"
	if err != nil {
		message = err.Error()
	}
	HandleError(ctx, w, http.StatusInternalServerError, message, err)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	logger.FromContext(ctx).Warn().
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}

// LogDatabaseError logs database errors with context
func LogDatabaseError(ctx context.Context, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("operation", operation).
		Err(err).
		Msg("Database error")
}
