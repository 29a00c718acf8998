package dto

// InquiryCreateRequest payload for sending an inquiry against a property.
// The sender is always the authenticated principal.
type InquiryCreateRequest struct {
	PropertyID int64  `json:"propertyId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// InquiryRespondRequest payload for answering an inquiry.
type InquiryRespondRequest struct {
	MessageID int64  `json:"messageId"`
	Response  string `json:"response"`
}

// InquiryResponse representation of an inquiry.
type InquiryResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	PropertyID   int64   `json:"propertyId"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Status       string  `json:"status"`
	Response     *string `json:"response,omitempty"`
	SenderName   string  `json:"senderName,omitempty"`
	PropertyName string  `json:"propertyName,omitempty"`
}
