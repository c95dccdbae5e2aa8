package engine

import "time"

// DefaultWeekdayIsWorkDay is the fail-open calendar default: when a company
// has no default work calendar, or the calendar has no row for a weekday,
// that weekday counts as a working weekday. This silently shapes every
// downstream result, so it is a named constant rather than an inline branch.
const DefaultWeekdayIsWorkDay = true

// Policy carries the tenant-configurable rules of the resolution engine.
type Policy struct {
	// GracePeriod is the tolerance window after shift start before a
	// clock-in is classified as late. Zero means exact match required.
	GracePeriod time.Duration

	// HoursTolerance is the maximum accepted deviation between recorded
	// total hours and the span derived from clock events before the entry
	// is flagged as inconsistent.
	HoursTolerance time.Duration

	// HolidayOverridesSchedule controls the precedence between a company
	// holiday and an employee's explicit weekly schedule row marked as a
	// work day. False (the default) lets the explicit schedule win.
	HolidayOverridesSchedule bool

	// DefaultTimezone applies to companies without a configured timezone.
	DefaultTimezone string
}

// DefaultPolicy returns the engine defaults: no grace period, 15 minutes of
// hours tolerance, explicit schedule wins over holiday, UTC.
func DefaultPolicy() Policy {
	return Policy{
		GracePeriod:              0,
		HoursTolerance:           15 * time.Minute,
		HolidayOverridesSchedule: false,
		DefaultTimezone:          "UTC",
	}
}
