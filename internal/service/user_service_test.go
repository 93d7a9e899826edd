package service

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/repository/memory"
)

func TestUserRegister(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	user, err := svc.Register(ctx, "John Doe", "John@Example.com ", "correct horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.Email != "john@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked out of the service")
	}
	if user.MFAEnabled {
		t.Error("mfa enabled by default")
	}
}

func TestUserRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "a@b.com", "longenough"},
		{"missing email", "John", "", "longenough"},
		{"malformed email", "John", "not-an-address", "longenough"},
		{"short password", "John", "a@b.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.userName, tc.email, tc.password)
			var validation *domain.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("got %v, want ValidationError", err)
			}
		})
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	if _, err := svc.Register(ctx, "John", "john@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "Johnny", "john@example.com", "longenough"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestUserAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	if _, err := svc.Register(ctx, "John", "john@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "john@example.com", "longenough")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Email != "john@example.com" {
		t.Errorf("authenticated wrong user: %q", user.Email)
	}

	// wrong password and unknown email are indistinguishable
	if _, err := svc.Authenticate(ctx, "john@example.com", "wrongpassword"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "longenough"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUserVerifyMFA(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	svc := NewUserService(repo)

	registered, err := svc.Register(ctx, "Jane", "jane@example.com", "longenough")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// account without MFA cannot complete a second factor
	if _, err := svc.VerifyMFA(ctx, registered.ID, "123456"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("mfa on plain account: got %v, want ErrInvalidCredentials", err)
	}

	stored, err := repo.GetByID(ctx, registered.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	stored.MFAEnabled = true
	if err := repo.Update(ctx, stored); err != nil {
		t.Fatalf("enable mfa: %v", err)
	}

	if _, err := svc.VerifyMFA(ctx, registered.ID, "12ab56"); err == nil {
		t.Fatal("expected validation error for malformed code")
	}
	user, err := svc.VerifyMFA(ctx, registered.ID, "123456")
	if err != nil {
		t.Fatalf("verify mfa: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("verified wrong user %s", user.ID)
	}
}

func TestUserListSanitized(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	if _, err := svc.Register(ctx, "John", "john@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Error("password hash leaked in list")
	}
}
