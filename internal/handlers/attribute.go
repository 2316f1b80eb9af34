package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/noora/internal/models"
	"github.com/example/noora/internal/services"
	"github.com/example/noora/internal/utils"
)

// AttributeHandler exposes the attribute schema registry and the product
// specification store.
type AttributeHandler struct {
	attrs *services.AttributeService
	specs *services.SpecificationService
}

// NewAttributeHandler constructs AttributeHandler.
func NewAttributeHandler(attrs *services.AttributeService, specs *services.SpecificationService) *AttributeHandler {
	return &AttributeHandler{attrs: attrs, specs: specs}
}

type defineAttributeRequest struct {
	ScopeType    string  `json:"scope_type" validate:"required,oneof=category subcategory"`
	ScopeID      string  `json:"scope_id" validate:"required,uuid"`
	Key          string  `json:"key" validate:"required"`
	Label        string  `json:"label" validate:"required"`
	DataType     string  `json:"data_type" validate:"required,oneof=TEXT NUMBER BOOLEAN SINGLE_SELECT MULTI_SELECT"`
	Unit         *string `json:"unit"`
	IsFilterable bool    `json:"is_filterable"`
	IsRequired   bool    `json:"is_required"`
	SortOrder    int     `json:"sort_order" validate:"gte=0"`
}

// DefineAttribute gets or creates a definition for a scope. Conflicting data types
// for an existing key are rejected.
func (h *AttributeHandler) DefineAttribute(c *fiber.Ctx) error {
	var req defineAttributeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	scopeID, err := uuid.Parse(req.ScopeID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scope_id")
	}

	attr, err := h.attrs.Define(services.DefineAttributeInput{
		ScopeType:    req.ScopeType,
		ScopeID:      scopeID,
		Key:          req.Key,
		Label:        req.Label,
		DataType:     req.DataType,
		Unit:         req.Unit,
		IsFilterable: req.IsFilterable,
		IsRequired:   req.IsRequired,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": attr})
}

// ListAttributes returns the definitions of a scope in display order.
func (h *AttributeHandler) ListAttributes(c *fiber.Ctx) error {
	scopeType := c.Query("scope_type", models.ScopeCategory)
	scopeID, err := uuid.Parse(c.Query("scope_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scope_id")
	}

	attrs, err := h.attrs.ListByScope(scopeType, scopeID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": attrs})
}

type updateAttributeRequest struct {
	Label        string  `json:"label"`
	DataType     string  `json:"data_type"`
	Unit         *string `json:"unit"`
	IsFilterable bool    `json:"is_filterable"`
	IsRequired   bool    `json:"is_required"`
	SortOrder    int     `json:"sort_order" validate:"gte=0"`
}

// UpdateAttribute modifies display fields of a definition.
func (h *AttributeHandler) UpdateAttribute(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateAttributeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	attr, err := h.attrs.Update(id, req.Label, req.Unit, req.IsFilterable, req.IsRequired, req.SortOrder, req.DataType)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": attr})
}

// DeleteAttribute removes a definition with its options and stored values.
func (h *AttributeHandler) DeleteAttribute(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.attrs.Delete(id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListOptions returns the options of an attribute in display order.
func (h *AttributeHandler) ListOptions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	options, err := h.attrs.ListOptions(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": options})
}

type addOptionRequest struct {
	Value     string `json:"value" validate:"required"`
	Label     string `json:"label" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// AddOption attaches an enumerated option to a select-typed attribute.
func (h *AttributeHandler) AddOption(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req addOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	option, err := h.attrs.AddOption(id, req.Value, req.Label, req.SortOrder)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": option})
}

// DeleteOption removes an option.
func (h *AttributeHandler) DeleteOption(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("option_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.attrs.DeleteOption(id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type setSpecificationsRequest struct {
	ScopeType string                       `json:"scope_type" validate:"required,oneof=category subcategory"`
	ScopeID   string                       `json:"scope_id" validate:"required,uuid"`
	Values    map[string]services.RawValue `json:"values" validate:"required"`
}

// SetSpecifications applies a batch of attribute values to a product. Bad values
// are reported per field and never block the valid ones.
func (h *AttributeHandler) SetSpecifications(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req setSpecificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	scopeID, err := uuid.Parse(req.ScopeID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scope_id")
	}

	fieldErrors, err := h.specs.SetValues(productID, req.ScopeType, scopeID, req.Values)
	if err != nil {
		return err
	}

	simple, detailed, err := h.specs.GetSpecifications(productID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":                 len(fieldErrors) == 0,
		"errors":                  fieldErrors,
		"specifications":          simple,
		"specifications_detailed": detailed,
	})
}

// DeleteSpecification removes one stored value from a product.
func (h *AttributeHandler) DeleteSpecification(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	attributeID, err := uuid.Parse(c.Params("attribute_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attribute id")
	}

	if err := h.specs.DeleteValue(productID, attributeID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
