package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type weeklyScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyScheduleRepository(db *database.DB) schedule.WeeklyScheduleRepository {
	return &weeklyScheduleRepositoryImpl{db: db}
}

const weeklyScheduleColumns = `id, employee_id, company_id, day_of_week,
	work_shift_id, is_work_day, created_at, updated_at`

func scanWeeklySchedule(row pgx.Row, w *schedule.WeeklySchedule) error {
	return row.Scan(
		&w.ID, &w.EmployeeID, &w.CompanyID, &w.DayOfWeek,
		&w.WorkShiftID, &w.IsWorkDay, &w.CreatedAt, &w.UpdatedAt,
	)
}

// Upsert implements schedule.WeeklyScheduleRepository. The employee+weekday
// pair is unique; a conflicting insert replaces the existing row's content.
func (r *weeklyScheduleRepositoryImpl) Upsert(ctx context.Context, row schedule.WeeklySchedule) (schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_schedules (id, employee_id, company_id, day_of_week,
			work_shift_id, is_work_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, day_of_week) DO UPDATE
		SET work_shift_id = EXCLUDED.work_shift_id,
		    is_work_day = EXCLUDED.is_work_day,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + weeklyScheduleColumns

	var saved schedule.WeeklySchedule
	err := scanWeeklySchedule(q.QueryRow(ctx, query,
		row.ID, row.EmployeeID, row.CompanyID, row.DayOfWeek,
		row.WorkShiftID, row.IsWorkDay, row.CreatedAt, row.UpdatedAt,
	), &saved)
	if err != nil {
		return schedule.WeeklySchedule{}, err
	}
	return saved, nil
}

// ListByEmployee implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklyScheduleColumns + `
		FROM weekly_schedules
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY day_of_week
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly schedule: %w", err)
	}
	defer rows.Close()

	return collectWeeklySchedules(rows)
}

// ListByCompany implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklyScheduleColumns + `
		FROM weekly_schedules
		WHERE company_id = $1
		ORDER BY employee_id, day_of_week
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company weekly schedules: %w", err)
	}
	defer rows.Close()

	return collectWeeklySchedules(rows)
}

func collectWeeklySchedules(rows pgx.Rows) ([]schedule.WeeklySchedule, error) {
	var schedules []schedule.WeeklySchedule
	for rows.Next() {
		var row schedule.WeeklySchedule
		if err := scanWeeklySchedule(rows, &row); err != nil {
			return nil, fmt.Errorf("failed to scan weekly schedule row: %w", err)
		}
		schedules = append(schedules, row)
	}
	return schedules, rows.Err()
}

// Delete implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) Delete(ctx context.Context, employeeID string, dayOfWeek int, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM weekly_schedules WHERE employee_id = $1 AND day_of_week = $2 AND company_id = $3`,
		employeeID, dayOfWeek, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete weekly schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
