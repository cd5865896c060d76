package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corvolab/speech-analyzer/pkg/models"
)

// memoryRepository is an in-memory UserRepository for service tests.
type memoryRepository struct {
	users map[string]*models.User
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[string]*models.User)}
}

func (r *memoryRepository) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	r.users[user.Email] = user
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func newTestService() *JWTService {
	return NewJWTService(Config{SecretKey: "test-secret", TokenDuration: time.Hour}, newMemoryRepository())
}

func TestJWTService_RegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "long-enough-password" {
		t.Error("password stored unhashed")
	}

	token, err := svc.Login(ctx, "alice@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email in claims, got %q", claims.Email)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user id %q in claims, got %q", user.ID, claims.UserID)
	}
}

func TestJWTService_RegisterWeakPassword(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), "a@example.com", "short"); err != ErrWeakPassword {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

// brokenRepository fails GetByEmail with an arbitrary error so the
// lookup failure path can be told apart from "user not found".
type brokenRepository struct {
	*memoryRepository
	getByEmailErr error
}

func (r *brokenRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.getByEmailErr != nil {
		return nil, r.getByEmailErr
	}
	return r.memoryRepository.GetByEmail(ctx, email)
}

func TestJWTService_RegisterSurfacesLookupFailure(t *testing.T) {
	dbErr := errors.New("connection reset by peer")
	repo := &brokenRepository{memoryRepository: newMemoryRepository(), getByEmailErr: dbErr}
	svc := NewJWTService(Config{SecretKey: "test-secret", TokenDuration: time.Hour}, repo)

	if _, err := svc.Register(context.Background(), "a@example.com", "long-enough-password"); !errors.Is(err, dbErr) {
		t.Errorf("expected lookup error to surface, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Error("user created despite failed existence check")
	}
}

func TestJWTService_RegisterDuplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@example.com", "long-enough-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "a@example.com", "long-enough-password"); err != ErrUserExists {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestJWTService_LoginWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@example.com", "long-enough-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(ctx, "a@example.com", "wrong-password-entirely"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestJWTService_ValidateGarbageToken(t *testing.T) {
	svc := newTestService()

	if _, err := svc.ValidateToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTService_RejectsTokenFromOtherSecret(t *testing.T) {
	issuer := NewJWTService(Config{SecretKey: "other-secret", TokenDuration: time.Hour}, newMemoryRepository())
	ctx := context.Background()

	if _, err := issuer.Register(ctx, "a@example.com", "long-enough-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := issuer.Login(ctx, "a@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc := newTestService()
	if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for foreign token, got %v", err)
	}
}
