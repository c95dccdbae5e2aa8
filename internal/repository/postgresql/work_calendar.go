package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workCalendarRepositoryImpl struct {
	db *database.DB
}

func NewWorkCalendarRepository(db *database.DB) calendar.WorkCalendarRepository {
	return &workCalendarRepositoryImpl{db: db}
}

// Create implements calendar.WorkCalendarRepository. The calendar and its
// weekday rows are inserted in one transaction.
func (r *workCalendarRepositoryImpl) Create(ctx context.Context, cal calendar.WorkCalendar) (calendar.WorkCalendar, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO work_calendars (id, company_id, name, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, query,
			cal.ID, cal.CompanyID, cal.Name, cal.IsDefault, cal.CreatedAt, cal.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert work calendar: %w", err)
		}

		dayQuery := `
			INSERT INTO work_calendar_days (id, work_calendar_id, day_of_week, is_work_day)
			VALUES ($1, $2, $3, $4)
		`
		for _, day := range cal.Days {
			if _, err := tx.Exec(ctx, dayQuery,
				day.ID, day.WorkCalendarID, day.DayOfWeek, day.IsWorkDay,
			); err != nil {
				return fmt.Errorf("failed to insert work calendar day: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return calendar.WorkCalendar{}, err
	}
	return cal, nil
}

// GetByID implements calendar.WorkCalendarRepository.
func (r *workCalendarRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (calendar.WorkCalendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, is_default, created_at, updated_at
		FROM work_calendars
		WHERE id = $1 AND company_id = $2
	`

	var cal calendar.WorkCalendar
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&cal.ID, &cal.CompanyID, &cal.Name, &cal.IsDefault, &cal.CreatedAt, &cal.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.WorkCalendar{}, calendar.ErrCalendarNotFound
		}
		return calendar.WorkCalendar{}, fmt.Errorf("failed to get work calendar with id %s: %w", id, err)
	}

	days, err := r.loadDays(ctx, cal.ID)
	if err != nil {
		return calendar.WorkCalendar{}, err
	}
	cal.Days = days
	return cal, nil
}

// GetDefault implements calendar.WorkCalendarRepository.
func (r *workCalendarRepositoryImpl) GetDefault(ctx context.Context, companyID string) (*calendar.WorkCalendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, is_default, created_at, updated_at
		FROM work_calendars
		WHERE company_id = $1 AND is_default
	`

	var cal calendar.WorkCalendar
	err := q.QueryRow(ctx, query, companyID).Scan(
		&cal.ID, &cal.CompanyID, &cal.Name, &cal.IsDefault, &cal.CreatedAt, &cal.UpdatedAt,
	)
	if err != nil {
		// No default calendar is a normal state, not an error; the engine
		// falls back to its named default.
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default work calendar: %w", err)
	}

	days, err := r.loadDays(ctx, cal.ID)
	if err != nil {
		return nil, err
	}
	cal.Days = days
	return &cal, nil
}

func (r *workCalendarRepositoryImpl) loadDays(ctx context.Context, calendarID string) ([]calendar.WorkDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_calendar_id, day_of_week, is_work_day
		FROM work_calendar_days
		WHERE work_calendar_id = $1
		ORDER BY day_of_week
	`

	rows, err := q.Query(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work calendar days: %w", err)
	}
	defer rows.Close()

	var days []calendar.WorkDay
	for rows.Next() {
		var day calendar.WorkDay
		if err := rows.Scan(&day.ID, &day.WorkCalendarID, &day.DayOfWeek, &day.IsWorkDay); err != nil {
			return nil, fmt.Errorf("failed to scan work calendar day row: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// ListByCompany implements calendar.WorkCalendarRepository.
func (r *workCalendarRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]calendar.WorkCalendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, is_default, created_at, updated_at
		FROM work_calendars
		WHERE company_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work calendars: %w", err)
	}
	defer rows.Close()

	var calendars []calendar.WorkCalendar
	for rows.Next() {
		var cal calendar.WorkCalendar
		if err := rows.Scan(&cal.ID, &cal.CompanyID, &cal.Name, &cal.IsDefault, &cal.CreatedAt, &cal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan work calendar row: %w", err)
		}
		calendars = append(calendars, cal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range calendars {
		days, err := r.loadDays(ctx, calendars[i].ID)
		if err != nil {
			return nil, err
		}
		calendars[i].Days = days
	}
	return calendars, nil
}

// SetDefault implements calendar.WorkCalendarRepository.
func (r *workCalendarRepositoryImpl) SetDefault(ctx context.Context, id string, companyID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE work_calendars SET is_default = false WHERE company_id = $1`, companyID,
		); err != nil {
			return fmt.Errorf("failed to clear default work calendars: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE work_calendars SET is_default = true WHERE id = $1 AND company_id = $2`,
			id, companyID,
		)
		if err != nil {
			return fmt.Errorf("failed to set default work calendar: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return calendar.ErrCalendarNotFound
		}
		return nil
	})
}

// Update implements calendar.WorkCalendarRepository. Weekday rows are
// replaced wholesale.
func (r *workCalendarRepositoryImpl) Update(ctx context.Context, cal calendar.WorkCalendar) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE work_calendars SET name = $1, updated_at = $2 WHERE id = $3 AND company_id = $4`,
			cal.Name, cal.UpdatedAt, cal.ID, cal.CompanyID,
		)
		if err != nil {
			return fmt.Errorf("failed to update work calendar with id %s: %w", cal.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return calendar.ErrCalendarNotFound
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM work_calendar_days WHERE work_calendar_id = $1`, cal.ID,
		); err != nil {
			return fmt.Errorf("failed to clear work calendar days: %w", err)
		}

		dayQuery := `
			INSERT INTO work_calendar_days (id, work_calendar_id, day_of_week, is_work_day)
			VALUES ($1, $2, $3, $4)
		`
		for _, day := range cal.Days {
			if _, err := tx.Exec(ctx, dayQuery,
				day.ID, day.WorkCalendarID, day.DayOfWeek, day.IsWorkDay,
			); err != nil {
				return fmt.Errorf("failed to insert work calendar day: %w", err)
			}
		}
		return nil
	})
}

// Delete implements calendar.WorkCalendarRepository.
func (r *workCalendarRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM work_calendars WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete work calendar with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrCalendarNotFound
	}
	return nil
}
