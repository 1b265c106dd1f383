package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/movemate/logistics-api/internal/core/domain"
)

type stubAuthRepo struct {
	findFn   func(ctx context.Context, username string) (*domain.User, error)
	createFn func(ctx context.Context, user *domain.User) (*domain.User, error)
}

func (r *stubAuthRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findFn(ctx, username)
}

func (r *stubAuthRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.createFn(ctx, user)
}

func TestAuthService_Register(t *testing.T) {
	repo := &stubAuthRepo{
		createFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			user.ID = "1"
			return user, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "ada", "pass1234", "ada@example.com", domain.RoleAgent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash == "pass1234" || user.PasswordHash == "" {
		t.Errorf("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")) != nil {
		t.Errorf("stored hash does not verify")
	}
}

func TestAuthService_Register_RejectsBadInput(t *testing.T) {
	repo := &stubAuthRepo{
		createFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			t.Fatalf("repo should not be called")
			return nil, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	cases := []struct {
		name     string
		username string
		password string
		role     string
	}{
		{"empty username", "", "pass", domain.RoleAdmin},
		{"empty password", "ada", "", domain.RoleAdmin},
		{"unknown role", "ada", "pass", "superuser"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.username, tc.password, "", tc.role); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &stubAuthRepo{
		findFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: username, PasswordHash: string(hash), Role: domain.RoleAdmin}, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "ada", "pass1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "ada" {
		t.Errorf("username = %q", user.Username)
	}

	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "ada" || claims["role"] != domain.RoleAdmin {
		t.Errorf("claims = %v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &stubAuthRepo{
		findFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: username, PasswordHash: string(hash)}, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ada", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := &stubAuthRepo{
		findFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
