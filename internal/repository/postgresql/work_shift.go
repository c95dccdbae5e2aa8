package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type workShiftRepositoryImpl struct {
	db *database.DB
}

func NewWorkShiftRepository(db *database.DB) schedule.WorkShiftRepository {
	return &workShiftRepositoryImpl{db: db}
}

const workShiftColumns = `id, company_id, name, start_minute, end_minute,
	break_start_minute, break_end_minute, is_night_shift, created_at, updated_at`

func scanWorkShift(row pgx.Row, s *schedule.WorkShift) error {
	return row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.StartMinute, &s.EndMinute,
		&s.BreakStartMinute, &s.BreakEndMinute, &s.IsNightShift,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

// Create implements schedule.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Create(ctx context.Context, shift schedule.WorkShift) (schedule.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_shifts (id, company_id, name, start_minute, end_minute,
			break_start_minute, break_end_minute, is_night_shift, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + workShiftColumns

	var created schedule.WorkShift
	err := scanWorkShift(q.QueryRow(ctx, query,
		shift.ID, shift.CompanyID, shift.Name, shift.StartMinute, shift.EndMinute,
		shift.BreakStartMinute, shift.BreakEndMinute, shift.IsNightShift,
		shift.CreatedAt, shift.UpdatedAt,
	), &created)
	if err != nil {
		return schedule.WorkShift{}, err
	}
	return created, nil
}

// GetByID implements schedule.WorkShiftRepository.
func (r *workShiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (schedule.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts WHERE id = $1 AND company_id = $2`

	var shift schedule.WorkShift
	if err := scanWorkShift(q.QueryRow(ctx, query, id, companyID), &shift); err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkShift{}, schedule.ErrWorkShiftNotFound
		}
		return schedule.WorkShift{}, fmt.Errorf("failed to get work shift with id %s: %w", id, err)
	}
	return shift, nil
}

// GetByIDs implements schedule.WorkShiftRepository.
func (r *workShiftRepositoryImpl) GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]schedule.WorkShift, error) {
	shifts := make(map[string]schedule.WorkShift, len(ids))
	if len(ids) == 0 {
		return shifts, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts WHERE id = ANY($1) AND company_id = $2`

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to batch get work shifts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var shift schedule.WorkShift
		if err := scanWorkShift(rows, &shift); err != nil {
			return nil, fmt.Errorf("failed to scan work shift row: %w", err)
		}
		shifts[shift.ID] = shift
	}
	return shifts, rows.Err()
}

// ListByCompany implements schedule.WorkShiftRepository.
func (r *workShiftRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]schedule.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts WHERE company_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.WorkShift
	for rows.Next() {
		var shift schedule.WorkShift
		if err := scanWorkShift(rows, &shift); err != nil {
			return nil, fmt.Errorf("failed to scan work shift row: %w", err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

// Update implements schedule.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Update(ctx context.Context, shift schedule.WorkShift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_shifts
		SET name = $1, start_minute = $2, end_minute = $3,
		    break_start_minute = $4, break_end_minute = $5,
		    is_night_shift = $6, updated_at = $7
		WHERE id = $8 AND company_id = $9
	`

	tag, err := q.Exec(ctx, query,
		shift.Name, shift.StartMinute, shift.EndMinute,
		shift.BreakStartMinute, shift.BreakEndMinute,
		shift.IsNightShift, shift.UpdatedAt,
		shift.ID, shift.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work shift with id %s: %w", shift.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrWorkShiftNotFound
	}
	return nil
}

// Delete implements schedule.WorkShiftRepository. A shift referenced by
// weekly schedule rows is protected by the foreign key.
func (r *workShiftRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM work_shifts WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return schedule.ErrShiftInUse
		}
		return fmt.Errorf("failed to delete work shift with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrWorkShiftNotFound
	}
	return nil
}
