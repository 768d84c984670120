package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCredentialStore struct {
	creds map[string]Credentials
}

func (f fakeCredentialStore) FindCredentials(_ context.Context, email string) (Credentials, error) {
	c, ok := f.creds[email]
	if !ok {
		return Credentials{}, ErrInvalidCredentials
	}
	return c, nil
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("Admin123*")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	store := fakeCredentialStore{creds: map[string]Credentials{
		"admin@local.test": {UserID: "u1", Email: "admin@local.test", Role: RoleAdmin, PasswordHash: hash},
	}}
	svc := NewService(store, "secret", time.Hour)

	result, err := svc.Login(context.Background(), "  Admin@Local.Test ", "Admin123*")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.User.ID != "u1" || result.User.Role != RoleAdmin {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	user, err := ParseToken("secret", result.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if user.UserID != "u1" {
		t.Fatalf("unexpected subject %q", user.UserID)
	}

	if _, err := svc.Login(context.Background(), "admin@local.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@local.test", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
