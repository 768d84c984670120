package catalogs

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"empleados/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, kind Kind) ([]Entry, error) {
	table, err := TableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, fmt.Sprintf("SELECT id::text, name FROM %s ORDER BY name", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, 4)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Exists(ctx context.Context, kind Kind, id string) (bool, error) {
	table, err := TableFor(kind)
	if err != nil {
		return false, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := s.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
