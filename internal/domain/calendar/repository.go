package calendar

import "context"

// WorkCalendarRepository defines data access methods for work calendars.
// All methods include companyID parameter to prevent cross-company data access.
type WorkCalendarRepository interface {
	Create(ctx context.Context, cal WorkCalendar) (WorkCalendar, error)

	GetByID(ctx context.Context, id string, companyID string) (WorkCalendar, error)

	// GetDefault retrieves the company's default calendar with its weekday
	// rows. Returns nil (not an error) when the company has none configured.
	GetDefault(ctx context.Context, companyID string) (*WorkCalendar, error)

	ListByCompany(ctx context.Context, companyID string) ([]WorkCalendar, error)

	// SetDefault flags one calendar as the company default and clears the
	// flag on every other calendar of the company, atomically.
	SetDefault(ctx context.Context, id string, companyID string) error

	Update(ctx context.Context, cal WorkCalendar) error

	Delete(ctx context.Context, id string, companyID string) error
}
