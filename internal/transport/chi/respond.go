package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vuzz-app/vuzz/internal/domain"
)

// ErrorCode is the machine-readable error discriminator in API responses.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUserNotFound     ErrorCode = "user_not_found"
	CodeEventNotFound    ErrorCode = "event_not_found"
	CodeChatNotFound     ErrorCode = "chat_not_found"
	CodeAlreadyExists    ErrorCode = "already_exists"
	CodeNoSession        ErrorCode = "no_session"
	CodeSessionExhausted ErrorCode = "session_exhausted"
	CodeNotParticipant   ErrorCode = "not_participant"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUserNotFound,
		domain.ErrEventNotFound,
		domain.ErrChatNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrUnknownTag,
		domain.ErrNoSession,
		domain.ErrSessionExhausted,
		domain.ErrNotParticipant,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}
