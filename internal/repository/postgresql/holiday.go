package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row, h *holiday.Holiday) error {
	return row.Scan(
		&h.ID, &h.CompanyID, &h.Name, &h.Date, &h.IsRecurring,
		&h.Description, &h.CreatedAt, &h.UpdatedAt,
	)
}

const holidayColumns = `id, company_id, name, date, is_recurring, description, created_at, updated_at`

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, company_id, name, date, is_recurring, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + holidayColumns

	var created holiday.Holiday
	err := scanHoliday(q.QueryRow(ctx, query,
		h.ID, h.CompanyID, h.Name, h.Date, h.IsRecurring,
		h.Description, h.CreatedAt, h.UpdatedAt,
	), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrDuplicateDate
		}
		return holiday.Holiday{}, err
	}
	return created, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1 AND company_id = $2`

	var found holiday.Holiday
	if err := scanHoliday(q.QueryRow(ctx, query, id, companyID), &found); err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday with id %s: %w", id, err)
	}
	return found, nil
}

// ListForRange implements holiday.HolidayRepository. Exact-date holidays are
// restricted to the range; recurring holidays are returned unconditionally
// since their year is ignored at match time.
func (r *holidayRepositoryImpl) ListForRange(ctx context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE company_id = $1
		  AND (is_recurring OR (date >= $2 AND date <= $3))
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays for range: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// ListByCompany implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE company_id = $1 ORDER BY date`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := scanHoliday(rows, &h); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays
		SET name = $1, date = $2, is_recurring = $3, description = $4, updated_at = $5
		WHERE id = $6 AND company_id = $7
	`

	tag, err := q.Exec(ctx, query,
		h.Name, h.Date, h.IsRecurring, h.Description, h.UpdatedAt,
		h.ID, h.CompanyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.ErrDuplicateDate
		}
		return fmt.Errorf("failed to update holiday with id %s: %w", h.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
