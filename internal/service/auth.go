package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/filebox/internal/repository"
	"github.com/avolkov/filebox/internal/token"
)

// TokenManager defines the session token operations required by the
// auth service.
type TokenManager interface {
	// Issue creates a fresh session token mapped to ownerID.
	Issue(ctx context.Context, ownerID string) (string, error)
	// Resolve returns the owner behind a token, or token.ErrUnauthorized.
	Resolve(ctx context.Context, tok string) (string, error)
	// Revoke destroys a token, or reports token.ErrUnauthorized.
	Revoke(ctx context.Context, tok string) error
}

// AuthService verifies credentials and manages session tokens.
type AuthService struct {
	users  UserRepository
	tokens TokenManager
}

// NewAuthService constructs an AuthService over the given stores.
func NewAuthService(users UserRepository, tokens TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies email and password and issues a session token. Unknown
// email and wrong password both come back as ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	tok, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

// Logout revokes tok. Revoking an unknown or expired token reports
// ErrUnauthorized just like presenting one.
func (s *AuthService) Logout(ctx context.Context, tok string) error {
	err := s.tokens.Revoke(ctx, tok)
	if errors.Is(err, token.ErrUnauthorized) {
		return ErrUnauthorized
	}
	return err
}
