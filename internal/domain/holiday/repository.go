package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for company holidays.
// All methods include companyID parameter to prevent cross-company data access.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)

	GetByID(ctx context.Context, id string, companyID string) (Holiday, error)

	// ListForRange retrieves holidays relevant to a date range: exact-date
	// holidays falling inside [from, to] plus every recurring holiday of the
	// company. The resolver filters recurring matches per date.
	ListForRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)

	ListByCompany(ctx context.Context, companyID string) ([]Holiday, error)

	Update(ctx context.Context, h Holiday) error

	Delete(ctx context.Context, id string, companyID string) error
}
