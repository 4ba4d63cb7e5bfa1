package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CommentHandler handles flat comment endpoints (owner-only mutations)
type CommentHandler struct {
	commentService service.CommentService
	media          service.MediaService
	validate       *validator.Validate
	logger         zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService, media service.MediaService, validate *validator.Validate, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		media:          media,
		validate:       validate,
		logger:         logger,
	}
}

// RegisterRoutes mounts comment routes behind required auth
func (h *CommentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/comments/", authMw(http.HandlerFunc(h.handleComment)))
}

func (h *CommentHandler) handleComment(w http.ResponseWriter, r *http.Request) {
	parts := pathSegments(r.URL.Path, "/comments/")
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}
	commentID, ok := parseID(parts[0])
	if !ok {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.updateComment(w, r, commentID)
	case http.MethodDelete:
		h.deleteComment(w, r, commentID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// updateComment godoc
// @Summary Update a comment
// @Description Updates a comment's content. Only the comment's owner may do this.
// @Tags comments
// @Accept json
// @Produce json
// @Param commentId path int true "Comment ID"
// @Param comment body dto.CommentUpdateDTO true "Comment update request"
// @Success 200 {object} dto.CommentResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 403 {string} string "Forbidden: not the comment owner"
// @Failure 404 {string} string "Comment not found"
// @Failure 500 {string} string "Failed to update comment"
// @Router /comments/{commentId} [patch]
func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request, commentID int64) {
	userID, ok := viewerID(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.CommentUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		h.writeCommentError(w, err, "Failed to update comment")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(commentResponse(r.Context(), h.media, comment)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// deleteComment godoc
// @Summary Delete a comment
// @Description Deletes a comment. Only the comment's owner may do this.
// @Tags comments
// @Produce json
// @Param commentId path int true "Comment ID"
// @Success 204 {string} string "No Content"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 403 {string} string "Forbidden: not the comment owner"
// @Failure 404 {string} string "Comment not found"
// @Failure 500 {string} string "Failed to delete comment"
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request, commentID int64) {
	userID, ok := viewerID(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		h.writeCommentError(w, err, "Failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) writeCommentError(w http.ResponseWriter, err error, prefix string) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		http.Error(w, "Comment not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNotCommentOwner):
		http.Error(w, "Forbidden: not the comment owner", http.StatusForbidden)
	default:
		http.Error(w, prefix+": "+err.Error(), http.StatusInternalServerError)
	}
}
