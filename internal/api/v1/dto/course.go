package dto

import "time"

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CoursePageDTO is the envelope for course listings. Next and Previous are
// page numbers; nil means no such page. An unpaginated listing carries all
// items with both indicators nil.
type CoursePageDTO struct {
	Items    []CourseResponseDTO `json:"items"`
	Next     *int                `json:"next"`
	Previous *int                `json:"previous"`
}
