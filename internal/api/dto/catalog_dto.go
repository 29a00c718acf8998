package dto

// CategoryRequest payload for creating or overwriting a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representation of a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PropertyRequest payload for creating or overwriting a listing. Updates
// require the full field set.
type PropertyRequest struct {
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Bathrooms   int    `json:"bathrooms"`
	Rooms       int    `json:"rooms"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// PropertyResponse representation of a listing.
type PropertyResponse struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Bathrooms   int    `json:"bathrooms"`
	Rooms       int    `json:"rooms"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
