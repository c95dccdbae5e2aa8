package engine

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
)

// resolveHoliday finds the holiday applying to a date. An exact-date match
// takes precedence over a recurring month/day match for the same date.
func resolveHoliday(holidays []holiday.Holiday, date time.Time) *holiday.Holiday {
	var recurring *holiday.Holiday
	for i := range holidays {
		h := &holidays[i]
		if !h.MatchesDate(date) {
			continue
		}
		if !h.IsRecurring {
			return h
		}
		if recurring == nil {
			recurring = h
		}
	}
	return recurring
}

// resolveDefaultWorkDay answers whether a weekday is a working weekday under
// the company's default calendar. A missing calendar or a missing weekday
// row falls open to engine.DefaultWeekdayIsWorkDay.
func resolveDefaultWorkDay(cal *calendar.WorkCalendar, weekday time.Weekday) bool {
	if cal == nil {
		return engine.DefaultWeekdayIsWorkDay
	}
	day := cal.DayFor(weekday)
	if day == nil {
		return engine.DefaultWeekdayIsWorkDay
	}
	return day.IsWorkDay
}

// resolveExpected decides the expected shift for one date. Precedence,
// highest first: special day assignment, company holiday, the employee's
// weekly schedule row, then the company calendar default.
func resolveExpected(snap *snapshot, policy engine.Policy, date time.Time) engine.ExpectedShift {
	weekday := date.Weekday()
	weeklyRow, hasWeekly := snap.weekly[int(weekday)]

	var weeklyShift *schedule.WorkShift
	if hasWeekly && weeklyRow.WorkShiftID != nil {
		if s, ok := snap.shifts[*weeklyRow.WorkShiftID]; ok {
			weeklyShift = &s
		}
	}

	if special, ok := snap.specials[dateKey(date)]; ok {
		expected := engine.ExpectedShift{
			IsWorkDay: special.ImpliesWorkDay(),
			Source:    engine.SourceSpecial,
		}
		// A special assignment carries no shift of its own; the employee's
		// normal shift for that weekday applies when work is required.
		if expected.IsWorkDay {
			attachShift(&expected, weeklyShift)
		}
		return expected
	}

	if hol := resolveHoliday(snap.holidays, date); hol != nil {
		if hasWeekly && weeklyRow.IsWorkDay && !policy.HolidayOverridesSchedule {
			// An explicit weekly row marked as a work day survives the
			// holiday; the precedence flips per tenant policy.
			expected := engine.ExpectedShift{
				IsWorkDay: true,
				Source:    engine.SourceWeekly,
			}
			attachShift(&expected, weeklyShift)
			return expected
		}
		return engine.ExpectedShift{
			IsWorkDay: false,
			Source:    engine.SourceHoliday,
		}
	}

	if hasWeekly {
		expected := engine.ExpectedShift{
			IsWorkDay: weeklyRow.IsWorkDay,
			Source:    engine.SourceWeekly,
		}
		if expected.IsWorkDay {
			attachShift(&expected, weeklyShift)
		}
		return expected
	}

	return engine.ExpectedShift{
		IsWorkDay: resolveDefaultWorkDay(snap.cal, weekday),
		Source:    engine.SourceCalendarDefault,
	}
}

func attachShift(expected *engine.ExpectedShift, shift *schedule.WorkShift) {
	if shift == nil {
		return
	}
	expected.Shift = shift
	expected.ShiftID = &shift.ID
	expected.ShiftName = &shift.Name
}
