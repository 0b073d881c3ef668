// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/entrypoint/dto"
)

// errNotAuthenticated is returned when a handler runs without an authenticated user.
var errNotAuthenticated = domainerror.Unauthorized(domainerror.CodeUserNotInContext, "User not authenticated", nil)

// endpoint describes how failures of one handler are rendered.
type endpoint struct {
	// resource is the response key, e.g. "spend" or "spends".
	resource   string
	collection bool
	// notFound is used when a write hits a row that disappeared after the ownership check.
	notFound domainerror.Code
	// notFoundMessage is the message for notFound, e.g. "Spend not found or already deleted".
	notFoundMessage string
	// internalMessage is the generic message returned with a 500.
	internalMessage string
}

// classifiedError is the status, code and client message for a failure.
type classifiedError struct {
	status  int
	code    domainerror.Code
	message string
}

// classify maps an error to its HTTP representation. Domain errors win, then
// typed persistence errors. Anything else is a 500 with the endpoint's generic message.
func classify(err error, ep endpoint) classifiedError {
	if de, ok := domainerror.As(err); ok && de.Kind != domainerror.KindInternal {
		return classifiedError{
			status:  dto.StatusForKind(de.Kind),
			code:    de.Code,
			message: de.Message,
		}
	}

	switch {
	case errors.Is(err, domainerror.ErrForeignKeyViolation):
		return classifiedError{http.StatusBadRequest, domainerror.CodeInvalidReference, domainerror.MsgInvalidReference}
	case errors.Is(err, domainerror.ErrUniqueViolation):
		return classifiedError{http.StatusConflict, domainerror.CodeResourceExists, domainerror.MsgResourceExists}
	case errors.Is(err, domainerror.ErrRecordNotFound) && ep.notFoundMessage != "":
		code := ep.notFound
		if code == "" {
			code = domainerror.CodeResourceNotFound
		}
		return classifiedError{http.StatusNotFound, code, ep.notFoundMessage}
	}

	code := domainerror.CodeInternalError
	if de, ok := domainerror.As(err); ok {
		code = de.Code
	}
	return classifiedError{http.StatusInternalServerError, code, ep.internalMessage}
}

// respondError writes the classified error in the endpoint's response shape.
func respondError(ctx *gin.Context, ep endpoint, err error) {
	ce := classify(err, ep)
	if ce.status >= http.StatusInternalServerError {
		slog.Error(ep.internalMessage,
			"error", err,
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
		)
	}

	if ep.collection {
		ctx.JSON(ce.status, dto.CollectionErrorBody(ep.resource, ce.message, ce.code))
		return
	}
	ctx.JSON(ce.status, dto.ErrorBody(ep.resource, ce.message, ce.code))
}

// fieldErrors maps JSON field names to the error reported when the field has
// the wrong JSON type, so "amount":"12" reads the same as "amount":-1.
type fieldErrors map[string]error

// bindJSON decodes the request body into dst.
func bindJSON(ctx *gin.Context, dst interface{}, fields fieldErrors) error {
	err := ctx.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if fieldErr, ok := fields[typeErr.Field]; ok {
			return fieldErr
		}
	}
	return domainerror.Validation(domainerror.CodeInvalidRequestBody, domainerror.MsgInvalidRequestBody)
}

// bindPartialJSON decodes a partial update into dst. Pointer fields cannot tell
// an absent key from an explicit null, so keys sent as null are rejected with
// their field error first; only absent keys mean "leave unchanged".
func bindPartialJSON(ctx *gin.Context, dst interface{}, fields fieldErrors) error {
	body, err := ctx.GetRawData()
	if err != nil {
		return domainerror.Validation(domainerror.CodeInvalidRequestBody, domainerror.MsgInvalidRequestBody)
	}

	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) == nil {
		keys := make([]string, 0, len(raw))
		for key := range raw {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if !bytes.Equal(bytes.TrimSpace(raw[key]), []byte("null")) {
				continue
			}
			if fieldErr, ok := fields[key]; ok {
				return fieldErr
			}
		}
	}

	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))
	return bindJSON(ctx, dst, fields)
}

// MethodNotAllowed returns a handler answering 405 in the resource's response shape.
func MethodNotAllowed(resource string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, dto.ErrorBody(resource, domainerror.MsgMethodNotAllowed, domainerror.CodeMethodNotAllowed))
	}
}
