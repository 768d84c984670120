package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the subset of a stored user needed to log in.
type Credentials struct {
	UserID       string
	Email        string
	Role         string
	PasswordHash string
}

type CredentialStore interface {
	// FindCredentials returns ErrInvalidCredentials when no user has the email.
	FindCredentials(ctx context.Context, email string) (Credentials, error)
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Service struct {
	store  CredentialStore
	secret string
	ttl    time.Duration
}

func NewService(store CredentialStore, secret string, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl}
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	creds, err := s.store.FindCredentials(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	user := UserContext{UserID: creds.UserID, Email: creds.Email, Role: creds.Role}
	token, err := GenerateToken(s.secret, user, s.ttl)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		AccessToken: token,
		User:        UserSummary{ID: creds.UserID, Email: creds.Email, Role: creds.Role},
	}, nil
}
