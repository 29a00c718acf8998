package domain

import "time"

// InquiryStatus enumerates lifecycle states for an inquiry thread.
type InquiryStatus string

const (
	InquiryStatusCreated   InquiryStatus = "CREATED"
	InquiryStatusRead      InquiryStatus = "READ"
	InquiryStatusResponded InquiryStatus = "RESPONDED"
)

// Inquiry is a message a prospective buyer sends against a property.
// Marking it read is idempotent; responding is a one-way transition.
type Inquiry struct {
	ID         int64
	UserID     int64
	PropertyID int64
	Title      string
	Content    string
	Status     InquiryStatus
	Response   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InquiryListing is an inquiry joined with sender and property summaries for
// list views.
type InquiryListing struct {
	Inquiry
	SenderName   string
	PropertyName string
}
