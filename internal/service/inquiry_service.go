package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// InquiryService coordinates inquiry message workflows.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
}

// InquiryDependencies bundles collaborators for the inquiry service.
type InquiryDependencies struct {
	InquiryRepo  repository.InquiryRepository
	PropertyRepo repository.PropertyRepository
	Dispatcher   events.Dispatcher
}

// NewInquiryService constructs the service.
func NewInquiryService(deps InquiryDependencies) *InquiryService {
	return &InquiryService{
		inquiries:  deps.InquiryRepo,
		properties: deps.PropertyRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a new inquiry from the authenticated sender against an
// existing property. The sender id comes from the verified principal, never
// from the request body.
func (s *InquiryService) Create(ctx context.Context, senderID, propertyID int64, title, content string) (*domain.Inquiry, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("property")
		}
		return nil, apperrors.MapError(err)
	}

	inquiry := &domain.Inquiry{
		UserID:     senderID,
		PropertyID: propertyID,
		Title:      strings.TrimSpace(title),
		Content:    strings.TrimSpace(content),
		Status:     domain.InquiryStatusCreated,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventInquiryCreated, inquiry.ID, events.InquiryCreatedPayload{
		PropertyID: inquiry.PropertyID,
		SenderID:   inquiry.UserID,
		Title:      inquiry.Title,
	}))
	return inquiry, nil
}

// List returns all inquiries joined with sender and property summaries.
func (s *InquiryService) List(ctx context.Context) ([]domain.InquiryListing, error) {
	list, err := s.inquiries.ListWithDetails(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.InquiryListing{}
	}
	return list, nil
}

// MarkRead marks an inquiry as read. The operation is idempotent and never
// downgrades a responded inquiry.
func (s *InquiryService) MarkRead(ctx context.Context, id int64) (*domain.Inquiry, error) {
	inquiry, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry.Status != domain.InquiryStatusCreated {
		return inquiry, nil
	}

	inquiry.Status = domain.InquiryStatusRead
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.NewEvent(events.EventInquiryRead, inquiry.ID, nil))
	return inquiry, nil
}

// Respond stores a response on the inquiry and marks it responded. Repeated
// responses overwrite; last write wins.
func (s *InquiryService) Respond(ctx context.Context, id int64, response string) (*domain.Inquiry, error) {
	inquiry, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	inquiry.Response = &response
	inquiry.Status = domain.InquiryStatusResponded
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventInquiryResponded, inquiry.ID, events.InquiryRespondedPayload{
		PropertyID: inquiry.PropertyID,
		SenderID:   inquiry.UserID,
		Response:   response,
	}))
	return inquiry, nil
}

// Delete removes an inquiry.
func (s *InquiryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.inquiries.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *InquiryService) get(ctx context.Context, id int64) (*domain.Inquiry, error) {
	inquiry, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("message")
		}
		return nil, apperrors.MapError(err)
	}
	return inquiry, nil
}

func (s *InquiryService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
