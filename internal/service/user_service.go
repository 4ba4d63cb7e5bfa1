package service

import (
	"context"
	"errors"
	"io"

	"ecourse/internal/model"
	"ecourse/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email or username already registered")
)

// AvatarUpload carries a multipart avatar file into registration.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProfileUpdate is the explicit allow-list of mutable profile fields. Nil
// fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Avatar    *string
}

type UserService interface {
	// Register creates a user with a hashed password, storing the avatar
	// first when one is provided.
	Register(ctx context.Context, u *model.User, password string, avatar *AvatarUpload) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	// UpdateProfile applies the allow-listed fields onto the caller's record.
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	media    MediaService
}

func NewUserService(userRepo repository.UserRepository, media MediaService) UserService {
	return &userService{userRepo: userRepo, media: media}
}

func (s *userService) Register(ctx context.Context, u *model.User, password string, avatar *AvatarUpload) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)

	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	if avatar != nil {
		storagePath, err := s.media.UploadAvatar(ctx, u.ID, avatar.Filename, avatar.ContentType, avatar.Body)
		if err != nil {
			return nil, err
		}
		u.Avatar = storagePath
		if err := s.userRepo.UpdateUser(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.userRepo.UpdateUser(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}
