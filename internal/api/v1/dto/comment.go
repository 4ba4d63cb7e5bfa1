package dto

import "time"

// CommentCreateDTO is used for incoming comment creation requests
type CommentCreateDTO struct {
	Content string `json:"content" validate:"required,min=1"`
}

// CommentUpdateDTO is used for incoming comment update requests
type CommentUpdateDTO struct {
	Content string `json:"content" validate:"required,min=1"`
}

// CommentAuthorDTO is the embedded author summary on comment responses
type CommentAuthorDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

// CommentResponseDTO is returned in API responses for comments
type CommentResponseDTO struct {
	ID        int64            `json:"id"`
	Content   string           `json:"content"`
	LessonID  int64            `json:"lesson_id"`
	User      CommentAuthorDTO `json:"user"`
	CreatedAt time.Time        `json:"created_at"`
}

// CommentPageDTO is the envelope for comment listings. Next and Previous are
// page numbers; nil means no such page.
type CommentPageDTO struct {
	Items    []CommentResponseDTO `json:"items"`
	Next     *int                 `json:"next"`
	Previous *int                 `json:"previous"`
}
