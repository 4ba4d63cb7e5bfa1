package dto

import (
	"time"

	"ecourse/internal/model"
)

type TagDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LessonResponseDTO is the base lesson representation, served to anonymous
// viewers.
type LessonResponseDTO struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CourseID  int64     `json:"course_id"`
	Tags      []TagDTO  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LessonDetailDTO extends the base representation with viewer-aware fields.
// Only authenticated viewers receive it.
type LessonDetailDTO struct {
	LessonResponseDTO
	LikeCount    int  `json:"like_count"`
	CommentCount int  `json:"comment_count"`
	Liked        bool `json:"liked"`
}

// NewLessonResponse builds the base representation.
func NewLessonResponse(l *model.Lesson) LessonResponseDTO {
	tags := make([]TagDTO, 0, len(l.Tags))
	for _, t := range l.Tags {
		tags = append(tags, TagDTO{ID: t.ID, Name: t.Name})
	}
	return LessonResponseDTO{
		ID:        l.ID,
		Subject:   l.Subject,
		Content:   l.Content,
		CourseID:  l.CourseID,
		Tags:      tags,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// NewLessonDetail wraps a base representation with the viewer-aware fields.
func NewLessonDetail(base LessonResponseDTO, stats *model.LessonStats) LessonDetailDTO {
	return LessonDetailDTO{
		LessonResponseDTO: base,
		LikeCount:         stats.LikeCount,
		CommentCount:      stats.CommentCount,
		Liked:             stats.Liked,
	}
}
