package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"ecourse/internal/middleware"
	"ecourse/internal/model"
	"ecourse/internal/repository"
	"ecourse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	testValidate = validator.New(validator.WithRequiredStructEnabled())
	testLogger   = zerolog.Nop()
)

// passthrough stands in for the auth middlewares; identity is injected per
// request with asUser.
func passthrough(next http.Handler) http.Handler { return next }

func asUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, userID))
}

func serve(mux *http.ServeMux, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, r)
	return rec
}

type fakeMedia struct{}

func (fakeMedia) UploadAvatar(_ context.Context, userID int64, filename, _ string, _ io.Reader) (string, error) {
	return "avatars/stub/" + filename, nil
}

func (fakeMedia) URL(_ context.Context, storagePath string) (string, error) {
	if storagePath == "" {
		return "", nil
	}
	return "https://media.test/" + storagePath, nil
}

type fakeCourseService struct {
	courses    []model.Course
	lessons    []model.Lesson
	total      int
	getErr     error
	lessonsErr error

	gotFilter repository.CourseFilter
	gotLimit  int
	gotOffset int
	gotQ      string
}

func (f *fakeCourseService) List(_ context.Context, filter repository.CourseFilter, limit, offset int) ([]model.Course, error) {
	f.gotFilter, f.gotLimit, f.gotOffset = filter, limit, offset
	return f.courses, nil
}

func (f *fakeCourseService) Count(_ context.Context, filter repository.CourseFilter) (int, error) {
	return f.total, nil
}

func (f *fakeCourseService) Get(_ context.Context, courseID int64) (*model.Course, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.courses {
		if f.courses[i].ID == courseID {
			return &f.courses[i], nil
		}
	}
	return nil, service.ErrCourseNotFound
}

func (f *fakeCourseService) ListLessons(_ context.Context, courseID int64, q string) ([]model.Lesson, error) {
	f.gotQ = q
	if f.lessonsErr != nil {
		return nil, f.lessonsErr
	}
	return f.lessons, nil
}

type fakeLessonService struct {
	lesson    *model.Lesson
	stats     model.LessonStats
	toggleErr error

	toggleCalls int
}

func (f *fakeLessonService) Get(_ context.Context, lessonID int64) (*model.Lesson, error) {
	if f.lesson == nil || f.lesson.ID != lessonID {
		return nil, service.ErrLessonNotFound
	}
	return f.lesson, nil
}

func (f *fakeLessonService) Stats(_ context.Context, lessonID, viewerID int64) (*model.LessonStats, error) {
	stats := f.stats
	return &stats, nil
}

func (f *fakeLessonService) ToggleLike(_ context.Context, userID, lessonID int64) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.toggleCalls++
	return true, nil
}

type fakeCommentService struct {
	comments  []model.Comment
	total     int
	listErr   error
	createErr error
	mutateErr error

	createCalls int
	gotContent  string
}

func (f *fakeCommentService) ListByLesson(_ context.Context, lessonID int64, limit, offset int) ([]model.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	end := offset + limit
	if offset > len(f.comments) {
		return []model.Comment{}, nil
	}
	if end > len(f.comments) {
		end = len(f.comments)
	}
	return f.comments[offset:end], nil
}

func (f *fakeCommentService) CountByLesson(_ context.Context, lessonID int64) (int, error) {
	if f.listErr != nil {
		return 0, f.listErr
	}
	return f.total, nil
}

func (f *fakeCommentService) Create(_ context.Context, lessonID, userID int64, content string) (*model.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createCalls++
	f.gotContent = content
	return &model.Comment{
		ID:       100,
		Content:  content,
		UserID:   userID,
		LessonID: lessonID,
		User:     model.User{ID: userID, Username: "author"},
	}, nil
}

func (f *fakeCommentService) Update(_ context.Context, commentID, callerID int64, content string) (*model.Comment, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return &model.Comment{
		ID:      commentID,
		Content: content,
		UserID:  callerID,
		User:    model.User{ID: callerID, Username: "author"},
	}, nil
}

func (f *fakeCommentService) Delete(_ context.Context, commentID, callerID int64) error {
	return f.mutateErr
}

type fakeUserService struct {
	user        *model.User
	registerErr error
	updateErr   error

	gotUpdate   service.ProfileUpdate
	updateCalls int
}

func (f *fakeUserService) Register(_ context.Context, u *model.User, password string, avatar *service.AvatarUpload) (*model.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	u.ID = 1
	if avatar != nil {
		u.Avatar = "avatars/stub/" + avatar.Filename
	}
	return u, nil
}

func (f *fakeUserService) Get(_ context.Context, id int64) (*model.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, service.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(_ context.Context, id int64, update service.ProfileUpdate) (*model.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.gotUpdate = update
	f.updateCalls++
	u := *f.user
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
	return &u, nil
}
