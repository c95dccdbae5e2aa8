package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type specialDayRepositoryImpl struct {
	db *database.DB
}

func NewSpecialDayRepository(db *database.DB) schedule.SpecialDayRepository {
	return &specialDayRepositoryImpl{db: db}
}

const specialDayColumns = `id, employee_id, company_id, date, type,
	is_mandatory, notes, created_at, updated_at`

func scanSpecialDay(row pgx.Row, a *schedule.SpecialDayAssignment) error {
	return row.Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date, &a.Type,
		&a.IsMandatory, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
}

// Create implements schedule.SpecialDayRepository. The employee+date pair is
// unique; one assignment per employee per date.
func (r *specialDayRepositoryImpl) Create(ctx context.Context, a schedule.SpecialDayAssignment) (schedule.SpecialDayAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO special_day_assignments (id, employee_id, company_id, date,
			type, is_mandatory, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + specialDayColumns

	var created schedule.SpecialDayAssignment
	err := scanSpecialDay(q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.CompanyID, a.Date,
		a.Type, a.IsMandatory, a.Notes, a.CreatedAt, a.UpdatedAt,
	), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.SpecialDayAssignment{}, schedule.ErrSpecialDayExists
		}
		return schedule.SpecialDayAssignment{}, err
	}
	return created, nil
}

// ListForRange implements schedule.SpecialDayRepository.
func (r *specialDayRepositoryImpl) ListForRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]schedule.SpecialDayAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + specialDayColumns + `
		FROM special_day_assignments
		WHERE employee_id = $1 AND company_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list special day assignments: %w", err)
	}
	defer rows.Close()

	return collectSpecialDays(rows)
}

// ListForDate implements schedule.SpecialDayRepository.
func (r *specialDayRepositoryImpl) ListForDate(ctx context.Context, companyID string, date time.Time) ([]schedule.SpecialDayAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + specialDayColumns + `
		FROM special_day_assignments
		WHERE company_id = $1 AND date = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list special day assignments for date: %w", err)
	}
	defer rows.Close()

	return collectSpecialDays(rows)
}

func collectSpecialDays(rows pgx.Rows) ([]schedule.SpecialDayAssignment, error) {
	var assignments []schedule.SpecialDayAssignment
	for rows.Next() {
		var a schedule.SpecialDayAssignment
		if err := scanSpecialDay(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan special day row: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// Delete implements schedule.SpecialDayRepository.
func (r *specialDayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM special_day_assignments WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete special day assignment with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrSpecialDayNotFound
	}
	return nil
}
