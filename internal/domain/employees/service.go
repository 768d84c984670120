package employees

import (
	"context"
	"time"

	"empleados/internal/domain/catalogs"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Service struct {
	Store    StoreAPI
	Catalogs catalogs.Reader
	// Location anchors date-only termination dates.
	Location *time.Location
}

func NewService(store StoreAPI, reader catalogs.Reader, loc *time.Location) *Service {
	return &Service{Store: store, Catalogs: reader, Location: loc}
}

func (s *Service) List(ctx context.Context, filter Filter, page, size int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	items, total, err := s.Store.List(ctx, filter, page, size)
	if err != nil {
		return Page{}, err
	}
	return NewPage(items, total, page, size), nil
}

func (s *Service) ListAll(ctx context.Context, filter Filter) ([]Employee, error) {
	return s.Store.ListAll(ctx, filter)
}

// Get returns ErrNotFound when no employee has the id.
func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput, createdBy string) (Employee, error) {
	fields, err := ValidateCreate(ctx, s.Catalogs, s.Location, in)
	if err != nil {
		return Employee{}, err
	}
	return s.Store.Create(ctx, fields, createdBy)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Employee, error) {
	changes, err := ValidateUpdate(ctx, s.Catalogs, s.Location, in)
	if err != nil {
		return Employee{}, err
	}
	return s.Store.Update(ctx, id, changes)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
