package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"empleados/internal/platform/querier"
)

const selectEmployee = `
    SELECT e.id::text, e.first_name, e.last_name, e.national_id, e.blood_type, e.phone, e.salary::text,
           a.id::text, a.name, p.id::text, p.name, f.id::text, f.name,
           e.termination_date, COALESCE(e.created_by::text, ''), e.created_at, e.updated_at
    FROM employees e
    JOIN arls a ON a.id = e.arl_id
    JOIN eps p ON p.id = e.eps_id
    JOIN pension_funds f ON f.id = e.pension_fund_id`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, selectEmployee+" WHERE e.id = $1", id))
	if err != nil {
		return Employee{}, mapReadError(err)
	}
	return emp, nil
}

func (s *Store) List(ctx context.Context, filter Filter, page, size int) ([]Employee, int, error) {
	where, args := filterClause(filter)

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees e"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, size, (page-1)*size)
	query := fmt.Sprintf("%s%s ORDER BY e.created_at DESC, e.id LIMIT $%d OFFSET $%d", selectEmployee, where, len(args)-1, len(args))
	items, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) ListAll(ctx context.Context, filter Filter) ([]Employee, error) {
	where, args := filterClause(filter)
	return s.query(ctx, selectEmployee+where+" ORDER BY e.created_at DESC, e.id", args...)
}

func (s *Store) Create(ctx context.Context, f Fields, createdBy string) (Employee, error) {
	var creator any
	if createdBy != "" {
		creator = createdBy
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, national_id, blood_type, phone, salary,
                           arl_id, eps_id, pension_fund_id, termination_date, created_by)
    VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11)
    RETURNING id::text
  `, f.FirstName, f.LastName, f.NationalID, string(f.BloodType), f.Phone, f.Salary.String(),
		f.ARLID, f.EPSID, f.PensionFundID, f.TerminationDate, creator).Scan(&id)
	if err != nil {
		return Employee{}, mapWriteError(err)
	}
	return s.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, c Changes) (Employee, error) {
	if c.Empty() {
		return s.Get(ctx, id)
	}

	sets := []string{}
	args := []any{}
	add := func(expr string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}
	if c.FirstName != nil {
		add("first_name = $%d", *c.FirstName)
	}
	if c.LastName != nil {
		add("last_name = $%d", *c.LastName)
	}
	if c.NationalID != nil {
		add("national_id = $%d", *c.NationalID)
	}
	if c.BloodType != nil {
		add("blood_type = $%d", string(*c.BloodType))
	}
	if c.Phone != nil {
		add("phone = $%d", *c.Phone)
	}
	if c.Salary != nil {
		add("salary = $%d::numeric", c.Salary.String())
	}
	if c.ARLID != nil {
		add("arl_id = $%d", *c.ARLID)
	}
	if c.EPSID != nil {
		add("eps_id = $%d", *c.EPSID)
	}
	if c.PensionFundID != nil {
		add("pension_fund_id = $%d", *c.PensionFundID)
	}
	switch {
	case c.ClearTermination:
		sets = append(sets, "termination_date = NULL")
	case c.TerminationDate != nil:
		add("termination_date = $%d", *c.TerminationDate)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	tag, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return Employee{}, mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return mapReadError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

// filterClause matches names case-insensitively and the national id as a
// case-sensitive substring.
func filterClause(filter Filter) (string, []any) {
	search := strings.TrimSpace(filter.Search)
	if search == "" {
		return "", nil
	}
	return ` WHERE (e.first_name ILIKE '%' || $1 || '%' OR e.last_name ILIKE '%' || $1 || '%' OR strpos(e.national_id, $2) > 0)`,
		[]any{escapeLike(search), search}
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var bloodType, salary string
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.NationalID, &bloodType, &emp.Phone, &salary,
		&emp.ARL.ID, &emp.ARL.Name, &emp.EPS.ID, &emp.EPS.Name, &emp.PensionFund.ID, &emp.PensionFund.Name,
		&emp.TerminationDate, &emp.CreatedBy, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return Employee{}, err
	}
	emp.BloodType = BloodType(bloodType)
	emp.Salary, err = decimal.NewFromString(salary)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %s salary %q: %w", emp.ID, salary, err)
	}
	return emp, nil
}

func mapReadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return ErrNotFound
	}
	return err
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicateNationalID
		case "23503":
			return ErrInvalidCatalogRef
		case "22P02":
			return ErrNotFound
		}
	}
	return err
}
