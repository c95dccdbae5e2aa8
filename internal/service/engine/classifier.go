package engine

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
)

// canonicalEntry picks the single entry that counts for an employee-date:
// the latest APPROVED entry, else the most recently updated one. The pick is
// deterministic regardless of input order; ties break on ID. The second
// return reports whether duplicates existed.
func canonicalEntry(entries []timeentry.TimeEntry) (*timeentry.TimeEntry, bool) {
	if len(entries) == 0 {
		return nil, false
	}

	best := 0
	for i := 1; i < len(entries); i++ {
		if entryLess(entries[best], entries[i]) {
			best = i
		}
	}
	return &entries[best], len(entries) > 1
}

// entryLess reports whether b outranks a as the canonical entry.
func entryLess(a, b timeentry.TimeEntry) bool {
	aApproved := a.Status == timeentry.StatusApproved
	bApproved := b.Status == timeentry.StatusApproved
	if aApproved != bApproved {
		return bApproved
	}
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
	return a.ID < b.ID
}

// classifyDay produces the per-day verdict for one employee-date. It is a
// pure function of its inputs: identical inputs always yield an identical
// result.
func classifyDay(
	employeeID string,
	date time.Time,
	loc *time.Location,
	expected engine.ExpectedShift,
	entries []timeentry.TimeEntry,
	policy engine.Policy,
) engine.DayResult {
	result := engine.DayResult{
		EmployeeID:  employeeID,
		Date:        dateKey(date),
		Expected:    expected,
		HoursWorked: decimal.Zero,
	}

	// A non-work day never becomes a worked day: a stray entry is flagged as
	// an incident, not reclassified.
	if !expected.IsWorkDay {
		result.Status = engine.StatusNotScheduled
		if len(entries) > 0 {
			result.AddIncident("time entry recorded on a non-work day")
		}
		return result
	}

	entry, duplicated := canonicalEntry(entries)
	if duplicated {
		result.AddIncident("multiple time entries recorded for the same date")
	}

	if entry == nil || entry.ClockIn == nil {
		result.Status = engine.StatusAbsent
		result.AddIncident("no clock-in recorded on a scheduled work day")
		return result
	}

	result.Status = engine.StatusPresent

	// Lateness is measured against the shift-start anchor in the company's
	// timezone. A work day resolved without a shift (calendar default) has
	// no anchor to compare against.
	if expected.Shift != nil {
		anchor := expected.Shift.StartOn(date, loc)
		lateBy := entry.ClockIn.In(loc).Sub(anchor)
		if lateBy > policy.GracePeriod {
			result.Status = engine.StatusLate
			result.IsLate = true
			// Minutes counted from the scheduled start, not from the end of
			// the grace window.
			result.LateMinutes = int(lateBy.Minutes())
		}
	}

	result.HoursWorked = resolveHours(&result, entry, policy)

	return result
}

// resolveHours derives the day's worked hours and records clock-consistency
// incidents on the result. The recorded total wins when it agrees with the
// clock events within the policy tolerance; otherwise the derived span wins.
func resolveHours(result *engine.DayResult, entry *timeentry.TimeEntry, policy engine.Policy) decimal.Decimal {
	if entry.ClockOut == nil {
		result.AddIncident("missing clock-out")
		if entry.TotalHours != nil {
			return *entry.TotalHours
		}
		return decimal.Zero
	}

	if entry.ClockOut.Before(*entry.ClockIn) {
		result.AddIncident("clock-out precedes clock-in")
		return decimal.Zero
	}

	derived := derivedHours(*entry.ClockIn, *entry.ClockOut, entry.BreakMinutes)

	if entry.TotalHours == nil {
		return derived
	}

	tolerance := decimal.NewFromFloat(policy.HoursTolerance.Hours())
	if entry.TotalHours.Sub(derived).Abs().GreaterThan(tolerance) {
		result.AddIncident("recorded total hours inconsistent with clock events")
		return derived
	}
	return *entry.TotalHours
}

// derivedHours computes clockOut - clockIn - break, floored at zero. The
// subtraction works on absolute timestamps, so a night-shift clock-out on
// the next calendar day needs no special casing.
func derivedHours(clockIn, clockOut time.Time, breakMinutes int) decimal.Decimal {
	minutes := clockOut.Sub(clockIn).Minutes() - float64(breakMinutes)
	if minutes < 0 {
		minutes = 0
	}
	return decimal.NewFromFloat(minutes / 60).Round(2)
}
