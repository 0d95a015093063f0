package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/filebox/internal/models"
	"github.com/avolkov/filebox/internal/repository"
)

// UserRepository defines the credential store operations required by
// the user service.
type UserRepository interface {
	// EmailExists reports whether a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// Create inserts a new user and returns it with its assigned id.
	Create(ctx context.Context, email string, passwordHash []byte) (*models.User, error)
	// GetByEmail returns the user with the given email, or
	// repository.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns the user with the given id, or
	// repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserService implements registration and user lookup.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user from an email and a plaintext password.
// The password is bcrypt-hashed before it reaches the repository.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, email, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a race with a concurrent registration of the same email.
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetByID returns the user behind an already-authenticated owner id.
// A dangling id (token outlived the user record) reads as Unauthorized.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
