package handler

import (
	"encoding/json"
	"net/http"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, logger: logger}
}

// RegisterRoutes mounts category routes
func (h *CategoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/categories", http.HandlerFunc(h.listCategories))
	mux.Handle("/categories/", http.HandlerFunc(h.listCategories))
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves all course categories.
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponseDTO
// @Failure 500 {string} string "Failed to retrieve categories"
// @Router /categories [get]
func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve categories: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dto.CategoryResponseDTO, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, dto.CategoryResponseDTO{ID: c.ID, Name: c.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
