package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PropertiesHandler exposes listing CRUD endpoints.
type PropertiesHandler struct {
	catalog *service.CatalogService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(catalogService *service.CatalogService) *PropertiesHandler {
	return &PropertiesHandler{catalog: catalogService}
}

// Create handles POST /api/properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	input, err := parsePropertyInput(c)
	if err != nil {
		return err
	}
	property, err := h.catalog.CreateProperty(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(propertyResponse(property))
}

// List handles GET /api/properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	properties, err := h.catalog.ListProperties(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		resp = append(resp, propertyResponse(&properties[i]))
	}
	return c.JSON(resp)
}

// Show handles GET /api/properties/:id.
func (h *PropertiesHandler) Show(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	property, err := h.catalog.GetProperty(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(propertyResponse(property))
}

// Update handles PUT /api/properties/:id. The full field set is required
// and overwrites unconditionally.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parsePropertyInput(c)
	if err != nil {
		return err
	}
	property, err := h.catalog.UpdateProperty(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(propertyResponse(property))
}

// Delete handles DELETE /api/properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteProperty(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "property deleted successfully"})
}

func parsePropertyInput(c *fiber.Ctx) (service.PropertyInput, error) {
	var req dto.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PropertyInput{}, apperrors.NewValidationError("invalid payload")
	}
	if req.CategoryID <= 0 || req.Name == "" || req.City == "" {
		return service.PropertyInput{}, apperrors.NewValidationError("categoryId, name, city required")
	}
	return service.PropertyInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		City:        req.City,
		Bathrooms:   req.Bathrooms,
		Rooms:       req.Rooms,
		Description: req.Description,
		Image:       req.Image,
	}, nil
}
