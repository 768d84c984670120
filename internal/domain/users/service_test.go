package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empleados/internal/domain/auth"
	"empleados/internal/platform/validate"
)

type memStore struct {
	users  map[string]User
	hashes map[string]string
}

func newMemStore() *memStore {
	return &memStore{users: map[string]User{}, hashes: map[string]string{}}
}

func (m *memStore) FindCredentials(_ context.Context, email string) (auth.Credentials, error) {
	for _, u := range m.users {
		if u.Email == email {
			return auth.Credentials{UserID: u.ID, Email: u.Email, Role: u.Role, PasswordHash: m.hashes[u.ID]}, nil
		}
	}
	return auth.Credentials{}, auth.ErrInvalidCredentials
}

func (m *memStore) Get(_ context.Context, id string) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *memStore) List(context.Context) ([]User, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, email, hash, role string) (User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return User{}, ErrDuplicateEmail
		}
	}
	id := "u" + string(rune('0'+len(m.users)+1))
	u := User{ID: id, Email: email, Role: role, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.users[id] = u
	m.hashes[id] = hash
	return u, nil
}

func (m *memStore) Update(_ context.Context, id string, f UpdateFields) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	if f.Email != nil {
		u.Email = *f.Email
	}
	if f.Role != nil {
		u.Role = *f.Role
	}
	if f.PasswordHash != nil {
		m.hashes[id] = *f.PasswordHash
	}
	m.users[id] = u
	return u, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func TestCreateDefaultsToOperatorAndHashes(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	u, err := svc.Create(context.Background(), CreateInput{Email: "  Ana@Example.COM ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, auth.RoleOperator, u.Role)
	assert.NotEqual(t, "secret123", store.hashes[u.ID])
	assert.NoError(t, auth.CheckPassword(store.hashes[u.ID], "secret123"))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Create(context.Background(), CreateInput{Email: "not-an-email", Password: "short", Role: "ROOT"})
	issues, ok := validate.Issues(err)
	require.True(t, ok, "expected validation error, got %v", err)

	fields := map[string]bool{}
	for _, issue := range issues {
		fields[issue.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
	assert.True(t, fields["role"])
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newMemStore())
	_, err := svc.Create(context.Background(), CreateInput{Email: "a@b.co", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Email: "A@B.CO", Password: "secret123"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateRehashesPassword(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	u, err := svc.Create(context.Background(), CreateInput{Email: "a@b.co", Password: "secret123", Role: auth.RoleAdmin})
	require.NoError(t, err)

	password := "another-secret"
	role := auth.RoleOperator
	updated, err := svc.Update(context.Background(), u.ID, UpdateInput{Password: &password, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleOperator, updated.Role)
	assert.NoError(t, auth.CheckPassword(store.hashes[u.ID], password))
}

func TestUpdateMissingUser(t *testing.T) {
	svc := NewService(newMemStore())
	role := auth.RoleAdmin
	_, err := svc.Update(context.Background(), "missing", UpdateInput{Role: &role})
	assert.ErrorIs(t, err, ErrNotFound)
}
