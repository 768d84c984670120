package users

import (
	"context"
	"strings"

	"empleados/internal/domain/auth"
	"empleados/internal/platform/validate"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Email = normalizeEmail(in.Email)
	var verr validate.Error
	validate.Struct(&verr, in)
	if err := verr.Err(); err != nil {
		return User{}, err
	}
	if in.Role == "" {
		in.Role = auth.RoleOperator
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	return s.Store.Create(ctx, in.Email, hash, in.Role)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	var verr validate.Error
	validate.Struct(&verr, in)
	if err := verr.Err(); err != nil {
		return User{}, err
	}

	fields := UpdateFields{Email: in.Email, Role: in.Role}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return User{}, err
		}
		fields.PasswordHash = &hash
	}
	return s.Store.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
