package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/infrastructure/api/jsonapi"
	"github.com/helixml/trieve-go/infrastructure/payload"
)

// APIError is an error that carries the HTTP status to respond with.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates an APIError. cause may be nil.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to an HTTP status and writes it as a JSON:API error
// document. Validation errors produce one error object per field.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		WriteJSON(w, http.StatusUnprocessableEntity, jsonapi.NewErrorResponse(fieldErrors(verr)...))
		return
	}

	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	WriteJSON(w, status, jsonapi.NewErrorResponse(
		jsonapi.NewError(strconv.Itoa(status), http.StatusText(status), detail),
	))
}

func classify(err error) (int, string) {
	var apiErr *APIError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.cause != nil {
			return apiErr.code, apiErr.message + ": " + apiErr.cause.Error()
		}
		return apiErr.code, apiErr.message
	case errors.Is(err, model.ErrUnknownModel):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, payload.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	}
	return http.StatusInternalServerError, "internal server error"
}

func fieldErrors(verr *model.ValidationError) []jsonapi.Error {
	status := strconv.Itoa(http.StatusUnprocessableEntity)
	errs := make([]jsonapi.Error, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		e := jsonapi.Error{
			Status: status,
			Code:   "invalid_field",
			Title:  "Invalid field value",
			Detail: f.Reason,
			Meta:   &jsonapi.Meta{"model": verr.Model},
		}
		switch {
		case errors.Is(f, model.ErrMissingField):
			e.Code, e.Title = "missing_field", "Required field missing"
		case errors.Is(f, model.ErrNullPayload):
			e.Code, e.Title = "null_payload", "Payload is null"
		}
		if p := jsonapi.Pointer(f.Field); p != "" {
			e.Source = &jsonapi.ErrorSource{Pointer: p}
		}
		errs = append(errs, e)
	}
	return errs
}
