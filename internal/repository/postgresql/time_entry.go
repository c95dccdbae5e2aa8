package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const timeEntryColumns = `id, employee_id, company_id, date, clock_in, clock_out,
	total_hours, break_minutes, overtime_minutes, source, status, notes,
	created_at, updated_at`

func scanTimeEntry(row pgx.Row, e *timeentry.TimeEntry) error {
	return row.Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.Date, &e.ClockIn, &e.ClockOut,
		&e.TotalHours, &e.BreakMinutes, &e.OvertimeMinutes, &e.Source, &e.Status,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
}

// Ordering mirrors the canonical-entry pick: APPROVED first, then most
// recently updated. The classifier re-derives the pick; the ordering keeps
// result slices stable for callers that only read the first entry.
const timeEntryOrdering = `ORDER BY date, (status = 'APPROVED') DESC, updated_at DESC, id`

// ListForRange implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListForRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1 AND company_id = $2 AND date >= $3 AND date <= $4
		` + timeEntryOrdering

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// ListForDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListForDate(ctx context.Context, companyID string, date time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE company_id = $1 AND date = $2
		` + timeEntryOrdering

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries for date: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

func collectTimeEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	for rows.Next() {
		var e timeentry.TimeEntry
		if err := scanTimeEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
