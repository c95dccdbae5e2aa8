package timeentry

import (
	"context"
	"time"
)

// TimeEntryRepository defines read access to recorded clock events. The
// engine never writes entries. Lookups return ordered slices rather than a
// single row: duplicates for one employee+date are a data-quality concern
// the classifier must tolerate, not a constraint the repository may assume.
type TimeEntryRepository interface {
	// ListForRange retrieves one employee's entries with date inside
	// [from, to], ordered by date, then APPROVED first, then most recently
	// updated.
	ListForRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]TimeEntry, error)

	// ListForDate retrieves every employee's entries for one date, same
	// ordering per employee.
	ListForDate(ctx context.Context, companyID string, date time.Time) ([]TimeEntry, error)
}
