package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/pagination"
	"ecourse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LessonHandler handles lesson endpoints, including the nested comment and
// like actions.
type LessonHandler struct {
	lessonService  service.LessonService
	commentService service.CommentService
	media          service.MediaService
	validate       *validator.Validate
	paginator      pagination.Paginator
	logger         zerolog.Logger
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(
	lessonService service.LessonService,
	commentService service.CommentService,
	media service.MediaService,
	validate *validator.Validate,
	paginator pagination.Paginator,
	logger zerolog.Logger,
) *LessonHandler {
	return &LessonHandler{
		lessonService:  lessonService,
		commentService: commentService,
		media:          media,
		validate:       validate,
		paginator:      paginator,
		logger:         logger,
	}
}

// RegisterRoutes mounts lesson routes. Reads are public; comment creation and
// like toggling re-check identity at the top of the handler.
func (h *LessonHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/lessons/", optionalAuthMw(http.HandlerFunc(h.handleLesson)))
}

func (h *LessonHandler) handleLesson(w http.ResponseWriter, r *http.Request) {
	parts := pathSegments(r.URL.Path, "/lessons/")
	if len(parts) == 0 {
		http.NotFound(w, r)
		return
	}
	lessonID, ok := parseID(parts[0])
	if !ok {
		http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getLesson(w, r, lessonID)
	case len(parts) == 2 && parts[1] == "comments" && r.Method == http.MethodGet:
		h.listComments(w, r, lessonID)
	case len(parts) == 2 && parts[1] == "comments" && r.Method == http.MethodPost:
		h.createComment(w, r, lessonID)
	case len(parts) == 2 && parts[1] == "like" && r.Method == http.MethodPost:
		h.toggleLike(w, r, lessonID)
	default:
		http.NotFound(w, r)
	}
}

// getLesson godoc
// @Summary Get a lesson
// @Description Retrieves an active lesson. Authenticated callers receive the extended representation with like/comment counters; anonymous callers the base one.
// @Tags lessons
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.LessonDetailDTO
// @Failure 404 {string} string "Lesson not found"
// @Failure 500 {string} string "Failed to retrieve lesson"
// @Router /lessons/{lessonId} [get]
func (h *LessonHandler) getLesson(w http.ResponseWriter, r *http.Request, lessonID int64) {
	lesson, err := h.lessonService.Get(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			http.Error(w, "Lesson not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve lesson: "+err.Error(), http.StatusInternalServerError)
		return
	}

	base := dto.NewLessonResponse(lesson)

	w.Header().Set("Content-Type", "application/json")
	viewer, authenticated := viewerID(r)
	if !authenticated {
		if err := json.NewEncoder(w).Encode(base); err != nil {
			h.logger.Error().Err(err).Msg("Failed to encode response")
		}
		return
	}

	stats, err := h.lessonService.Stats(r.Context(), lessonID, viewer)
	if err != nil {
		http.Error(w, "Failed to retrieve lesson: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(dto.NewLessonDetail(base, stats)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// listComments godoc
// @Summary List a lesson's comments
// @Description Retrieves a page of the lesson's comments, most recent first, each with its author embedded. Always paginated; page defaults to 1.
// @Tags lessons,comments
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Param page query int false "Page number (1-indexed)"
// @Success 200 {object} dto.CommentPageDTO
// @Failure 404 {string} string "Lesson not found"
// @Failure 500 {string} string "Failed to retrieve comments"
// @Router /lessons/{lessonId}/comments [get]
func (h *LessonHandler) listComments(w http.ResponseWriter, r *http.Request, lessonID int64) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))
	limit, offset := h.paginator.Window(page)

	comments, err := h.commentService.ListByLesson(r.Context(), lessonID, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			http.Error(w, "Lesson not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	total, err := h.commentService.CountByLesson(r.Context(), lessonID)
	if err != nil {
		http.Error(w, "Failed to retrieve comments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	next, prev := h.paginator.Indicators(page, total)
	resp := dto.CommentPageDTO{Items: make([]dto.CommentResponseDTO, 0, len(comments)), Next: next, Previous: prev}
	for i := range comments {
		resp.Items = append(resp.Items, commentResponse(r.Context(), h.media, &comments[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// createComment godoc
// @Summary Comment on a lesson
// @Description Creates a comment bound to the lesson and the authenticated caller.
// @Tags lessons,comments
// @Accept json
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Param comment body dto.CommentCreateDTO true "Comment creation request"
// @Success 201 {object} dto.CommentResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Lesson not found"
// @Failure 500 {string} string "Failed to create comment"
// @Router /lessons/{lessonId}/comments [post]
func (h *LessonHandler) createComment(w http.ResponseWriter, r *http.Request, lessonID int64) {
	userID, ok := viewerID(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.CommentCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.Create(r.Context(), lessonID, userID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			http.Error(w, "Lesson not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to create comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(commentResponse(r.Context(), h.media, comment)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// toggleLike godoc
// @Summary Like or unlike a lesson
// @Description Flips the caller's like on the lesson (one row per user/lesson pair) and returns the lesson's extended detail.
// @Tags lessons
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 201 {object} dto.LessonDetailDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Lesson not found"
// @Failure 500 {string} string "Failed to toggle like"
// @Router /lessons/{lessonId}/like [post]
func (h *LessonHandler) toggleLike(w http.ResponseWriter, r *http.Request, lessonID int64) {
	userID, ok := viewerID(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	if _, err := h.lessonService.ToggleLike(r.Context(), userID, lessonID); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			http.Error(w, "Lesson not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to toggle like: "+err.Error(), http.StatusInternalServerError)
		return
	}

	lesson, err := h.lessonService.Get(r.Context(), lessonID)
	if err != nil {
		http.Error(w, "Failed to retrieve lesson: "+err.Error(), http.StatusInternalServerError)
		return
	}
	stats, err := h.lessonService.Stats(r.Context(), lessonID, userID)
	if err != nil {
		http.Error(w, "Failed to retrieve lesson: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto.NewLessonDetail(dto.NewLessonResponse(lesson), stats)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
