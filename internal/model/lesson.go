package model

import "time"

// Lesson belongs to a course and carries a set of shared tags.
type Lesson struct {
	ID        int64     `db:"id" json:"id"`
	Subject   string    `db:"subject" json:"subject"`
	Content   string    `db:"content" json:"content"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Tags []Tag `json:"tags,omitempty"`
}

// Tag is shared across lessons (many-to-many).
type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// LessonStats holds the viewer-aware counters attached to a lesson detail.
// Liked is always false for an anonymous viewer.
type LessonStats struct {
	LikeCount    int  `json:"like_count"`
	CommentCount int  `json:"comment_count"`
	Liked        bool `json:"liked"`
}
