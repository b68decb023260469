package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-api/internal/auth"
	"github.com/dentalcare/clinic-api/internal/config"
)

type mockRepo struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockRepo) Create(_ context.Context, name, email, passwordHash, role string) (*User, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.byID[u.ID] = u
	m.byEmail[email] = u
	return u, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, email string) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if other, ok := m.byEmail[email]; ok && other.ID != id {
		return nil, ErrEmailTaken
	}
	delete(m.byEmail, u.Email)
	u.Name = name
	u.Email = email
	u.UpdatedAt = time.Now()
	m.byEmail[email] = u
	return u, nil
}

func (m *mockRepo) List(_ context.Context) ([]User, error) {
	var out []User
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func testService() (*Service, *mockRepo) {
	repo := newMockRepo()
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return NewService(repo, cfg, zerolog.Nop()), repo
}

func TestRegister(t *testing.T) {
	svc, _ := testService()

	u, err := svc.Register(context.Background(), "Mina", "mina@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != auth.RoleUser {
		t.Fatalf("expected role user, got %q", u.Role)
	}
	if u.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, repo := testService()

	tests := []struct {
		name            string
		uname, email, pw string
	}{
		{"no name", "", "a@b.com", "pw12345678"},
		{"no email", "Mina", "", "pw12345678"},
		{"no password", "Mina", "a@b.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.uname, tt.email, tt.pw); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		})
	}
	if len(repo.byID) != 0 {
		t.Fatal("rejected registration reached the store")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := testService()

	if _, err := svc.Register(context.Background(), "Mina", "mina@example.com", "correct-horse"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Other", "mina@example.com", "battery-staple"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := testService()

	u, err := svc.Register(context.Background(), "Mina", "mina@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, got, err := svc.Login(context.Background(), "mina@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatal("login returned another user")
	}

	claims, err := auth.ParseToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != u.ID.String() || claims.Role != auth.RoleUser {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := testService()

	if _, err := svc.Register(context.Background(), "Mina", "mina@example.com", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "mina@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := testService()

	u, err := svc.Register(context.Background(), "Mina", "mina@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), u.ID, "Mina K", "mina.k@example.com")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Mina K" || updated.Email != "mina.k@example.com" {
		t.Fatalf("profile not updated: %+v", updated)
	}

	if _, err := svc.UpdateProfile(context.Background(), u.ID, "", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	svc, _ := testService()

	if _, err := svc.Register(context.Background(), "Mina", "mina@example.com", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}
	other, err := svc.Register(context.Background(), "Noor", "noor@example.com", "battery-staple")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.UpdateProfile(context.Background(), other.ID, "Noor", "mina@example.com"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
