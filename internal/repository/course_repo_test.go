package repository

import (
	"context"
	"testing"
)

func TestCourseListing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TEMPORARY TABLE courses (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			category_id BIGINT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		t.Fatalf("failed to create courses table: %v", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO courses (name, category_id, active) VALUES
			('Go Basics',       1, TRUE),
			('Advanced Go',     1, TRUE),
			('Python Basics',   2, TRUE),
			('Go Internals',    2, FALSE)
	`)
	if err != nil {
		t.Fatalf("failed to seed courses: %v", err)
	}

	repo := NewCourseRepo(db)

	// Unfiltered listing sees active courses only.
	courses, err := repo.ListCourses(ctx, CourseFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("listing courses: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("expected 3 active courses, got %d", len(courses))
	}
	for _, c := range courses {
		if c.Name == "Go Internals" {
			t.Fatal("inactive course leaked into the listing")
		}
	}

	// Case-insensitive name substring.
	courses, err = repo.ListCourses(ctx, CourseFilter{Query: "go"}, 0, 0)
	if err != nil {
		t.Fatalf("listing courses by name: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 active go courses, got %d", len(courses))
	}

	// Category equality.
	courses, err = repo.ListCourses(ctx, CourseFilter{CategoryID: 2}, 0, 0)
	if err != nil {
		t.Fatalf("listing courses by category: %v", err)
	}
	if len(courses) != 1 || courses[0].Name != "Python Basics" {
		t.Fatalf("unexpected category listing: %+v", courses)
	}

	// Both filters combine with AND: active go courses in category 2.
	courses, err = repo.ListCourses(ctx, CourseFilter{Query: "go", CategoryID: 2}, 0, 0)
	if err != nil {
		t.Fatalf("listing courses by name and category: %v", err)
	}
	if len(courses) != 0 {
		t.Fatalf("expected an empty intersection, got %+v", courses)
	}

	total, err := repo.CountCourses(ctx, CourseFilter{Query: "go"})
	if err != nil {
		t.Fatalf("counting courses: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected count 2, got %d", total)
	}

	// A direct fetch sees only active courses.
	inactive, err := repo.GetCourseByID(ctx, 4)
	if err != nil {
		t.Fatalf("getting inactive course: %v", err)
	}
	if inactive != nil {
		t.Fatalf("inactive course must read as absent, got %+v", inactive)
	}
	active, err := repo.GetCourseByID(ctx, 1)
	if err != nil {
		t.Fatalf("getting active course: %v", err)
	}
	if active == nil || active.Name != "Go Basics" {
		t.Fatalf("unexpected course: %+v", active)
	}
}

func TestLessonListing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TEMPORARY TABLE lessons (
			id BIGSERIAL PRIMARY KEY,
			subject TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			course_id BIGINT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		t.Fatalf("failed to create lessons table: %v", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO lessons (subject, course_id, active) VALUES
			('Goroutines',      1, TRUE),
			('Channels',        1, TRUE),
			('Generics (draft)',1, FALSE),
			('Goroutines',      2, TRUE)
	`)
	if err != nil {
		t.Fatalf("failed to seed lessons: %v", err)
	}

	repo := NewLessonRepo(db)

	// Scoped to the course, active only.
	lessons, err := repo.ListLessonsByCourse(ctx, 1, "")
	if err != nil {
		t.Fatalf("listing lessons: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("expected 2 active lessons, got %d", len(lessons))
	}
	for _, l := range lessons {
		if l.CourseID != 1 {
			t.Fatalf("lesson from another course leaked in: %+v", l)
		}
	}

	// Case-insensitive subject substring.
	lessons, err = repo.ListLessonsByCourse(ctx, 1, "GOROUT")
	if err != nil {
		t.Fatalf("listing lessons by subject: %v", err)
	}
	if len(lessons) != 1 || lessons[0].Subject != "Goroutines" {
		t.Fatalf("unexpected subject listing: %+v", lessons)
	}

	// An inactive lesson reads as absent.
	inactive, err := repo.GetLessonByID(ctx, 3)
	if err != nil {
		t.Fatalf("getting inactive lesson: %v", err)
	}
	if inactive != nil {
		t.Fatalf("inactive lesson must read as absent, got %+v", inactive)
	}
}
