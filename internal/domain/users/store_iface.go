package users

import (
	"context"

	"empleados/internal/domain/auth"
)

type StoreAPI interface {
	FindCredentials(ctx context.Context, email string) (auth.Credentials, error)
	Get(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, email, passwordHash, role string) (User, error)
	Update(ctx context.Context, id string, fields UpdateFields) (User, error)
	Delete(ctx context.Context, id string) error
}
