package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/model"
	"ecourse/internal/pagination"
	"ecourse/internal/repository"
	"ecourse/internal/service"

	"github.com/rs/zerolog"
)

// CourseHandler handles course endpoints, including the nested lesson
// listing.
type CourseHandler struct {
	courseService service.CourseService
	media         service.MediaService
	paginator     pagination.Paginator
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, media service.MediaService, paginator pagination.Paginator, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		media:         media,
		paginator:     paginator,
		logger:        logger,
	}
}

// RegisterRoutes mounts course routes. Courses are public; the optional auth
// middleware only attaches identity when a token is present.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/courses", optionalAuthMw(http.HandlerFunc(h.listCourses)))
	mux.Handle("/courses/", optionalAuthMw(http.HandlerFunc(h.handleCourse)))
}

func (h *CourseHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	parts := pathSegments(r.URL.Path, "/courses/")
	if len(parts) == 0 {
		h.listCourses(w, r)
		return
	}
	courseID, ok := parseID(parts[0])
	if !ok {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getCourse(w, r, courseID)
	case len(parts) == 2 && parts[1] == "lessons" && r.Method == http.MethodGet:
		h.listLessons(w, r, courseID)
	default:
		http.NotFound(w, r)
	}
}

// listCourses godoc
// @Summary List courses
// @Description Retrieves active courses. The optional q parameter restricts by case-insensitive name substring, category_id by category. Filters combine with AND and apply to the listing only.
// @Tags courses
// @Produce json
// @Param q query string false "Name substring filter"
// @Param category_id query int false "Category filter"
// @Param page query int false "Page number (1-indexed); omit for the full result"
// @Success 200 {object} dto.CoursePageDTO
// @Failure 500 {string} string "Failed to retrieve courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := repository.CourseFilter{Query: r.URL.Query().Get("q")}
	if catID, ok := parseID(r.URL.Query().Get("category_id")); ok {
		filter.CategoryID = catID
	}

	var (
		courses    []model.Course
		next, prev *int
		err        error
	)
	rawPage := r.URL.Query().Get("page")
	if rawPage == "" {
		// No page parameter: the full result set in one envelope.
		courses, err = h.courseService.List(r.Context(), filter, 0, 0)
	} else {
		page := pagination.ParsePage(rawPage)
		limit, offset := h.paginator.Window(page)
		courses, err = h.courseService.List(r.Context(), filter, limit, offset)
		if err == nil {
			var total int
			total, err = h.courseService.Count(r.Context(), filter)
			if err == nil {
				next, prev = h.paginator.Indicators(page, total)
			}
		}
	}
	if err != nil {
		http.Error(w, "Failed to retrieve courses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := dto.CoursePageDTO{Items: make([]dto.CourseResponseDTO, 0, len(courses)), Next: next, Previous: prev}
	for i := range courses {
		resp.Items = append(resp.Items, h.courseResponse(r, &courses[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves an active course by its ID. Listing filters never apply here.
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to retrieve course"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request, courseID int64) {
	course, err := h.courseService.Get(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve course: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.courseResponse(r, course)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// listLessons godoc
// @Summary List a course's lessons
// @Description Retrieves the active lessons of a course, optionally restricted by a case-insensitive subject substring match. Not paginated.
// @Tags courses,lessons
// @Produce json
// @Param courseId path int true "Course ID"
// @Param q query string false "Subject substring filter"
// @Success 200 {array} dto.LessonResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to retrieve lessons"
// @Router /courses/{courseId}/lessons [get]
func (h *CourseHandler) listLessons(w http.ResponseWriter, r *http.Request, courseID int64) {
	lessons, err := h.courseService.ListLessons(r.Context(), courseID, r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve lessons: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dto.LessonResponseDTO, 0, len(lessons))
	for i := range lessons {
		resp = append(resp, dto.NewLessonResponse(&lessons[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *CourseHandler) courseResponse(r *http.Request, c *model.Course) dto.CourseResponseDTO {
	imageURL, err := h.media.URL(r.Context(), c.Image)
	if err != nil {
		h.logger.Warn().Err(err).Int64("course_id", c.ID).Msg("Failed to resolve course image URL")
	}
	return dto.CourseResponseDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    imageURL,
		CategoryID:  c.CategoryID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
