package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInquiryCreated   EventType = "inquiry_created"
	EventInquiryRead      EventType = "inquiry_read"
	EventInquiryResponded EventType = "inquiry_responded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	InquiryID int64       `json:"inquiry_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps identity and time onto an event.
func NewEvent(eventType EventType, inquiryID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		InquiryID: inquiryID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// InquiryCreatedPayload payload.
type InquiryCreatedPayload struct {
	PropertyID int64  `json:"property_id"`
	SenderID   int64  `json:"sender_id"`
	Title      string `json:"title"`
}

// InquiryRespondedPayload payload.
type InquiryRespondedPayload struct {
	PropertyID int64  `json:"property_id"`
	SenderID   int64  `json:"sender_id"`
	Response   string `json:"response"`
}
