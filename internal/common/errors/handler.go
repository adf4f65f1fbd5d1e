// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler writes request errors as API responses with standardized
// status mapping and logging.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// detailResponse matches the error body shape expected by the web client:
// {"detail": "Activity not found"}.
type detailResponse struct {
	Detail string `json:"detail"`
}

// HandleRequestError normalizes err, logs it, and writes the JSON error
// body with the mapped status code.
func (h *ErrorHandler) HandleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := AsStandard(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(r, stdErr, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(detailResponse{Detail: stdErr.Message})
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"code":    string(stdErr.Code),
		"status":  status,
		"method":  r.Method,
		"path":    r.URL.Path,
		"details": stdErr.Details,
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	// Client errors are expected traffic; only infrastructure failures are
	// worth an error-level line.
	if status >= http.StatusInternalServerError || stdErr.Code == ErrCodeStoreUnavailable {
		h.logger.Error("request failed", fields)
		return
	}
	h.logger.Warn("request rejected", fields)
}
