package dto

// CategoryResponseDTO is returned in API responses for categories
type CategoryResponseDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
