package employees

import "context"

type StoreAPI interface {
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter Filter, page, size int) ([]Employee, int, error)
	ListAll(ctx context.Context, filter Filter) ([]Employee, error)
	Create(ctx context.Context, fields Fields, createdBy string) (Employee, error)
	Update(ctx context.Context, id string, changes Changes) (Employee, error)
	Delete(ctx context.Context, id string) error
}
