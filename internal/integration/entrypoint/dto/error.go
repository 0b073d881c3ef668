// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"net/http"

	domainerror "github.com/spendly/backend/internal/domain/error"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorBody builds the error body of a single-resource endpoint. The resource
// key is always present and null, e.g. {"error":..., "code":..., "spend":null}.
func ErrorBody(resource, message string, code domainerror.Code) map[string]interface{} {
	body := map[string]interface{}{
		"error":  message,
		resource: nil,
	}
	if code != "" {
		body["code"] = string(code)
	}
	return body
}

// CollectionErrorBody builds the error body of a list endpoint, with an empty
// collection and a zero total.
func CollectionErrorBody(resource, message string, code domainerror.Code) map[string]interface{} {
	body := map[string]interface{}{
		"error":      message,
		resource:     []interface{}{},
		"totalCount": 0,
	}
	if code != "" {
		body["code"] = string(code)
	}
	return body
}

// StatusForKind maps an error kind to its HTTP status code.
func StatusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindUnauthorized:
		return http.StatusUnauthorized
	case domainerror.KindForbidden:
		return http.StatusForbidden
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindConflict:
		return http.StatusConflict
	case domainerror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
