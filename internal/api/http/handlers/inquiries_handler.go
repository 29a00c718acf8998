package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// InquiriesHandler exposes the inquiry message endpoints under /messages.
type InquiriesHandler struct {
	inquiries *service.InquiryService
}

// NewInquiriesHandler constructs handler.
func NewInquiriesHandler(inquiryService *service.InquiryService) *InquiriesHandler {
	return &InquiriesHandler{inquiries: inquiryService}
}

// Create handles POST /api/messages. The sender is the authenticated
// principal; the body only names the property and content.
func (h *InquiriesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.InquiryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.PropertyID <= 0 || req.Content == "" {
		return apperrors.NewValidationError("propertyId and content required")
	}

	inquiry, err := h.inquiries.Create(c.UserContext(), principal.User.ID, req.PropertyID, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(inquiryResponse(inquiry))
}

// List handles GET /api/messages.
func (h *InquiriesHandler) List(c *fiber.Ctx) error {
	listings, err := h.inquiries.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.InquiryResponse, 0, len(listings))
	for i := range listings {
		item := inquiryResponse(&listings[i].Inquiry)
		item.SenderName = listings[i].SenderName
		item.PropertyName = listings[i].PropertyName
		resp = append(resp, item)
	}
	return c.JSON(resp)
}

// MarkRead handles POST /api/messages/:id/read. Idempotent.
func (h *InquiriesHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	inquiry, err := h.inquiries.MarkRead(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(inquiryResponse(inquiry))
}

// Respond handles POST /api/messages/response.
func (h *InquiriesHandler) Respond(c *fiber.Ctx) error {
	var req dto.InquiryRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.MessageID <= 0 || req.Response == "" {
		return apperrors.NewValidationError("messageId and response required")
	}

	inquiry, err := h.inquiries.Respond(c.UserContext(), req.MessageID, req.Response)
	if err != nil {
		return err
	}
	return c.JSON(inquiryResponse(inquiry))
}

// Delete handles DELETE /api/messages/:id.
func (h *InquiriesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.inquiries.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "message deleted successfully"})
}

func inquiryResponse(inquiry *domain.Inquiry) dto.InquiryResponse {
	return dto.InquiryResponse{
		ID:         inquiry.ID,
		UserID:     inquiry.UserID,
		PropertyID: inquiry.PropertyID,
		Title:      inquiry.Title,
		Content:    inquiry.Content,
		Status:     string(inquiry.Status),
		Response:   inquiry.Response,
	}
}
