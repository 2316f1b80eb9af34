package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "category not found", NotFound("category not found").Error())
	assert.Equal(t, "weight: not a number", InvalidValue("weight", "not a number").Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("saving value: %w", SchemaConflict("data type mismatch"))
	assert.Equal(t, KindSchemaConflict, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, fiber.StatusBadRequest, KindInvalidValue.HTTPStatus())
	assert.Equal(t, fiber.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, fiber.StatusUnprocessableEntity, KindBusinessRule.HTTPStatus())
	assert.Equal(t, fiber.StatusConflict, KindSchemaConflict.HTTPStatus())
	assert.Equal(t, fiber.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, fiber.StatusInternalServerError, KindUnknown.HTTPStatus())
}
