package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/mail"
	"github.com/spec-kit/realty-service/internal/repository"
)

// NotificationService reacts to inquiry lifecycle events. Response
// notifications are best-effort: a failed send is logged, never propagated.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	properties repository.PropertyRepository
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, properties repository.PropertyRepository, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		properties: properties,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInquiryCreated, n.handleInquiryCreated)
	n.dispatcher.Subscribe(events.EventInquiryResponded, n.handleInquiryResponded)
}

func (n *NotificationService) handleInquiryCreated(_ context.Context, event events.Event) error {
	n.logger.Info("InquiryCreated", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleInquiryResponded(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryResponded", zap.Int64("inquiry_id", event.InquiryID))

	payload, ok := event.Payload.(events.InquiryRespondedPayload)
	if !ok {
		return nil
	}

	sender, err := n.users.GetByID(ctx, payload.SenderID)
	if err != nil {
		n.logger.Warn("response notification: sender lookup failed", zap.Int64("user_id", payload.SenderID), zap.Error(err))
		return nil
	}
	property, err := n.properties.GetByID(ctx, payload.PropertyID)
	if err != nil {
		n.logger.Warn("response notification: property lookup failed", zap.Int64("property_id", payload.PropertyID), zap.Error(err))
		return nil
	}

	subject, body := mail.InquiryResponseMessage(property.Name, payload.Response)
	if err := n.mailer.Send(sender.Email, subject, body); err != nil {
		n.logger.Warn("response notification: send failed", zap.String("to", sender.Email), zap.Error(err))
	}
	return nil
}
