package schedule

import (
	"context"
	"time"
)

// WorkShiftRepository defines data access methods for shift templates.
// All methods include companyID parameter to prevent cross-company data access.
type WorkShiftRepository interface {
	Create(ctx context.Context, shift WorkShift) (WorkShift, error)

	GetByID(ctx context.Context, id string, companyID string) (WorkShift, error)

	// GetByIDs batch-fetches shifts; missing IDs are silently absent from the
	// result map.
	GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]WorkShift, error)

	ListByCompany(ctx context.Context, companyID string) ([]WorkShift, error)

	Update(ctx context.Context, shift WorkShift) error

	Delete(ctx context.Context, id string, companyID string) error
}

// WeeklyScheduleRepository defines data access for recurring weekly rows.
type WeeklyScheduleRepository interface {
	// Upsert writes the row for employee+weekday; the latest write wins.
	Upsert(ctx context.Context, row WeeklySchedule) (WeeklySchedule, error)

	// ListByEmployee retrieves all weekly rows of one employee, at most one
	// per weekday.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]WeeklySchedule, error)

	// ListByCompany retrieves every weekly row of a company; used for
	// company-wide day aggregation.
	ListByCompany(ctx context.Context, companyID string) ([]WeeklySchedule, error)

	Delete(ctx context.Context, employeeID string, dayOfWeek int, companyID string) error
}

// SpecialDayRepository defines data access for date-specific overrides.
type SpecialDayRepository interface {
	Create(ctx context.Context, a SpecialDayAssignment) (SpecialDayAssignment, error)

	// ListForRange retrieves one employee's assignments inside [from, to].
	ListForRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]SpecialDayAssignment, error)

	// ListForDate retrieves every employee's assignment for one date.
	ListForDate(ctx context.Context, companyID string, date time.Time) ([]SpecialDayAssignment, error)

	Delete(ctx context.Context, id string, companyID string) error
}
