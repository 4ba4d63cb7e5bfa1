package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/model"
	"ecourse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const maxAvatarMemory = 10 << 20 // 10 MiB

// UserHandler handles registration and the current-user profile endpoints
type UserHandler struct {
	userService service.UserService
	media       service.MediaService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, media service.MediaService, validate *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		media:       media,
		validate:    validate,
		logger:      logger,
	}
}

// RegisterRoutes mounts user routes. Registration is public; the
// current-user endpoints require auth.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users", http.HandlerFunc(h.createUser))
	mux.Handle("/users/", http.HandlerFunc(h.createUser))
	mux.Handle("/users/current-user", authMw(http.HandlerFunc(h.handleCurrentUser)))
	mux.Handle("/users/current-user/", authMw(http.HandlerFunc(h.handleCurrentUser)))
}

// createUser godoc
// @Summary Register a user
// @Description Creates a user from a multipart form (profile fields plus an optional avatar file).
// @Tags users
// @Accept mpfd
// @Produce json
// @Param username formData string true "Username"
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param avatar formData file false "Avatar image"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {string} string "Malformed multipart body or validation failed"
// @Failure 409 {string} string "Email or username already registered"
// @Failure 500 {string} string "Failed to create user"
// @Router /users [post]
func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		http.Error(w, "Malformed multipart body: "+err.Error(), http.StatusBadRequest)
		return
	}

	req := dto.UserCreateDTO{
		Username:  r.FormValue("username"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	var avatar *service.AvatarUpload
	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		avatar = &service.AvatarUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "Malformed avatar upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	userModel := &model.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	created, err := h.userService.Register(r.Context(), userModel, req.Password, avatar)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(h.userResponse(r, created)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *UserHandler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getCurrentUser(w, r)
	case http.MethodPatch:
		h.updateCurrentUser(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// getCurrentUser godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "User not found"
// @Router /users/current-user [get]
func (h *UserHandler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.userResponse(r, user)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// updateCurrentUser godoc
// @Summary Update the current user's profile
// @Description Applies the allow-listed profile fields. Unknown keys in the payload are rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UserUpdateDTO true "Profile update request"
// @Success 200 {object} dto.UserResponseDTO
// @Failure 400 {string} string "Invalid JSON payload, unknown field, or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "User not found"
// @Failure 409 {string} string "Email already registered"
// @Router /users/current-user [patch]
func (h *UserHandler) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.UserUpdateDTO
	decoder := json.NewDecoder(r.Body)
	// Only the allow-listed fields may be submitted.
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Avatar:    req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to update user: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.userResponse(r, updated)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *UserHandler) userResponse(r *http.Request, u *model.User) dto.UserResponseDTO {
	avatarURL, err := h.media.URL(r.Context(), u.Avatar)
	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", u.ID).Msg("Failed to resolve avatar URL")
	}
	return dto.UserResponseDTO{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		AvatarURL: avatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
