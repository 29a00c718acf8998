package domain

import "time"

// Property is a real-estate listing. Every property belongs to exactly one
// category.
type Property struct {
	ID          int64
	CategoryID  int64
	Name        string
	City        string
	Bathrooms   int
	Rooms       int
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
