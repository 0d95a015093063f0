package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/filebox/internal/models"
	"github.com/avolkov/filebox/internal/repository"
)

type mockUserRepo struct {
	EmailExistsFunc func(ctx context.Context, email string) (bool, error)
	CreateFunc      func(ctx context.Context, email string, hash []byte) (*models.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc     func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFunc(ctx, email)
}
func (m *mockUserRepo) Create(ctx context.Context, email string, hash []byte) (*models.User, error) {
	return m.CreateFunc(ctx, email, hash)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func TestRegister_Success(t *testing.T) {
	var storedHash []byte
	repo := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, email string, hash []byte) (*models.User, error) {
			storedHash = hash
			return &models.User{ID: "u-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), "alice@x.com", "secret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != "u-1" || user.Email != "alice@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	// The plaintext never reaches the repository.
	if bcrypt.CompareHashAndPassword(storedHash, []byte("secret")) != nil {
		t.Errorf("stored hash does not verify against the password")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	if _, err := svc.Register(context.Background(), "", "secret"); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("error = %v; want ErrMissingEmail", err)
	}
	if _, err := svc.Register(context.Background(), "a@x.com", ""); !errors.Is(err, ErrMissingPassword) {
		t.Errorf("error = %v; want ErrMissingPassword", err)
	}
}

func TestRegister_AlreadyExists(t *testing.T) {
	repo := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "alice@x.com", "secret")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("error = %v; want ErrAlreadyExists", err)
	}
}

func TestRegister_LostCreationRace(t *testing.T) {
	// The existence check and the insert are separate statements, so a
	// concurrent registration can slip between them. The loser's insert
	// reports a duplicate, which reads the same as a pre-existing email.
	repo := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, email string, hash []byte) (*models.User, error) {
			return nil, repository.ErrDuplicateEmail
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "alice@x.com", "secret")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("error = %v; want ErrAlreadyExists", err)
	}
}

func TestRegister_RepoError(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, wantErr
		},
	}
	svc := NewUserService(repo)

	if _, err := svc.Register(context.Background(), "a@x.com", "p"); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v; want wrapped %v", err, wantErr)
	}
}

func TestGetByID_DanglingToken(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewUserService(repo)

	if _, err := svc.GetByID(context.Background(), "u-gone"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v; want ErrUnauthorized", err)
	}
}
