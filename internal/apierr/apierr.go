// Package apierr defines the error taxonomy exposed by the API and the
// helper that renders any error as a structured JSON body.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// Error codes surfaced in response bodies.
const (
	CodeUnauthenticated = "unauthenticated"
	CodePaymentRequired = "payment_required"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeValidation      = "validation_error"
	CodeUpstream        = "upstream_error"
	CodeInternal        = "internal_error"
)

// Error is a classified API failure. Services raise these close to the
// detection point; handlers render them unchanged.
type Error struct {
	Code    string `json:"error"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Status: http.StatusUnauthorized, Message: message}
}

func PaymentRequired(message string) *Error {
	return &Error{Code: CodePaymentRequired, Status: http.StatusPaymentRequired, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

func Validation(message, details string) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusUnprocessableEntity, Message: message, Details: details}
}

func Upstream(message string) *Error {
	return &Error{Code: CodeUpstream, Status: http.StatusInternalServerError, Message: message}
}

func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: message}
}

// As unwraps err into an *Error if one is anywhere in its chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Write renders err as the structured {error, message, details} body.
// Classified errors pass through unchanged. Anything else becomes a generic
// internal_error; its text is logged and only included in the body when debug
// is enabled.
func Write(w http.ResponseWriter, logger zerolog.Logger, debug bool, err error) {
	apiErr, ok := As(err)
	if !ok {
		apiErr = Internal("internal server error")
		if debug {
			apiErr.Details = err.Error()
		}
	}
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("code", apiErr.Code).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("code", apiErr.Code).Msg("Request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	if encodeErr := json.NewEncoder(w).Encode(apiErr); encodeErr != nil {
		logger.Error().Err(encodeErr).Msg("Failed to encode error response")
	}
}
