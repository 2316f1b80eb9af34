package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies domain errors so the transport layer can map them to HTTP statuses.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindBusinessRule
	KindSchemaConflict
	KindInvalidValue
	KindConflict
)

// Error is a domain error carrying its classification and an optional field name.
type Error struct {
	Kind    Kind
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validation reports malformed input at the boundary.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BusinessRule reports a violated business invariant.
func BusinessRule(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// SchemaConflict reports an attribute redefinition with an incompatible data type.
func SchemaConflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindSchemaConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidValue reports a value that cannot be coerced to its attribute's data type.
func InvalidValue(field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidValue, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a state conflict, e.g. deleting a category that still has products.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps a kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidValue:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindBusinessRule:
		return fiber.StatusUnprocessableEntity
	case KindSchemaConflict, KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
