package model

import "time"

// Comment is authored by a user on a lesson. The author relation is joined on
// every list read, so User is always populated on records coming out of the
// repository.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	UserID    int64     `db:"user_id" json:"user_id"`
	LessonID  int64     `db:"lesson_id" json:"lesson_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	User User `json:"user"`
}
