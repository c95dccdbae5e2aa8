package engine

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func emptySnapshot() *snapshot {
	return &snapshot{
		loc:      time.UTC,
		weekly:   map[int]schedule.WeeklySchedule{},
		shifts:   map[string]schedule.WorkShift{},
		specials: map[string]schedule.SpecialDayAssignment{},
		entries:  map[string][]timeentry.TimeEntry{},
	}
}

func TestResolveHoliday_RecurringMatchesEveryYear(t *testing.T) {
	t.Parallel()

	holidays := []holiday.Holiday{
		{ID: "h1", Name: "New Year", Date: date(2020, time.January, 1), IsRecurring: true},
	}

	assert.NotNil(t, resolveHoliday(holidays, date(2024, time.January, 1)))
	assert.NotNil(t, resolveHoliday(holidays, date(2031, time.January, 1)))
	assert.Nil(t, resolveHoliday(holidays, date(2024, time.January, 2)))
}

func TestResolveHoliday_ExactDateMatchesOnlyThatYear(t *testing.T) {
	t.Parallel()

	holidays := []holiday.Holiday{
		{ID: "h1", Name: "Election Day", Date: date(2024, time.February, 14)},
	}

	assert.NotNil(t, resolveHoliday(holidays, date(2024, time.February, 14)))
	assert.Nil(t, resolveHoliday(holidays, date(2025, time.February, 14)))
	assert.Nil(t, resolveHoliday(holidays, date(2023, time.February, 14)))
}

func TestResolveHoliday_ExactBeatsRecurring(t *testing.T) {
	t.Parallel()

	holidays := []holiday.Holiday{
		{ID: "recurring", Name: "Founding Day", Date: date(2000, time.June, 1), IsRecurring: true},
		{ID: "exact", Name: "One-off Closure", Date: date(2024, time.June, 1)},
	}

	got := resolveHoliday(holidays, date(2024, time.June, 1))
	require.NotNil(t, got)
	assert.Equal(t, "exact", got.ID)
}

func TestResolveDefaultWorkDay_FailsOpen(t *testing.T) {
	t.Parallel()

	// No calendar configured at all.
	assert.True(t, resolveDefaultWorkDay(nil, time.Saturday))

	// Calendar present but missing the weekday row.
	cal := &calendar.WorkCalendar{
		Days: []calendar.WorkDay{{DayOfWeek: 1, IsWorkDay: true}},
	}
	assert.True(t, resolveDefaultWorkDay(cal, time.Saturday))
}

func TestResolveDefaultWorkDay_UsesCalendarRow(t *testing.T) {
	t.Parallel()

	cal := fixtures.DefaultWorkCalendar("company-1")

	assert.True(t, resolveDefaultWorkDay(&cal, time.Monday))
	assert.True(t, resolveDefaultWorkDay(&cal, time.Friday))
	assert.False(t, resolveDefaultWorkDay(&cal, time.Saturday))
	assert.False(t, resolveDefaultWorkDay(&cal, time.Sunday))
}

func TestResolveExpected_FallbackChain(t *testing.T) {
	t.Parallel()

	policy := engine.DefaultPolicy()
	shift := fixtures.StandardOfficeShift("company-1")
	shiftID := shift.ID
	monday := date(2024, time.February, 5)

	snap := emptySnapshot()
	snap.cal = func() *calendar.WorkCalendar {
		cal := fixtures.DefaultWorkCalendar("company-1")
		return &cal
	}()
	snap.shifts[shiftID] = shift
	snap.weekly[1] = schedule.WeeklySchedule{
		EmployeeID: "emp-1", DayOfWeek: 1, WorkShiftID: &shiftID, IsWorkDay: true,
	}
	snap.holidays = []holiday.Holiday{
		{ID: "h1", Name: "Founding Day", Date: monday},
	}
	snap.specials[dateKey(monday)] = schedule.SpecialDayAssignment{
		ID: "sp1", EmployeeID: "emp-1", Date: monday, Type: schedule.SpecialDayGuard,
	}

	// Special day wins over everything.
	got := resolveExpected(snap, policy, monday)
	assert.Equal(t, engine.SourceSpecial, got.Source)
	assert.True(t, got.IsWorkDay)

	// Without the special, the explicit weekly work-day row survives the
	// holiday under the default policy.
	delete(snap.specials, dateKey(monday))
	got = resolveExpected(snap, policy, monday)
	assert.Equal(t, engine.SourceWeekly, got.Source)
	assert.True(t, got.IsWorkDay)

	// With the precedence flipped, the holiday wins.
	flipped := policy
	flipped.HolidayOverridesSchedule = true
	got = resolveExpected(snap, flipped, monday)
	assert.Equal(t, engine.SourceHoliday, got.Source)
	assert.False(t, got.IsWorkDay)

	// Without the holiday, the weekly row applies and carries its shift.
	snap.holidays = nil
	got = resolveExpected(snap, policy, monday)
	assert.Equal(t, engine.SourceWeekly, got.Source)
	require.NotNil(t, got.ShiftID)
	assert.Equal(t, shiftID, *got.ShiftID)

	// Without the weekly row, the calendar default applies.
	delete(snap.weekly, 1)
	got = resolveExpected(snap, policy, monday)
	assert.Equal(t, engine.SourceCalendarDefault, got.Source)
	assert.True(t, got.IsWorkDay)

	// Without any calendar, the named fail-open default applies.
	snap.cal = nil
	got = resolveExpected(snap, policy, monday)
	assert.Equal(t, engine.SourceCalendarDefault, got.Source)
	assert.Equal(t, engine.DefaultWeekdayIsWorkDay, got.IsWorkDay)
}

func TestResolveExpected_HolidayWithoutWeeklyRow(t *testing.T) {
	t.Parallel()

	monday := date(2024, time.February, 5)
	snap := emptySnapshot()
	snap.holidays = []holiday.Holiday{
		{ID: "h1", Name: "Founding Day", Date: monday},
	}

	// No explicit weekly row to defend the day; the holiday grants rest even
	// under the default policy.
	got := resolveExpected(snap, engine.DefaultPolicy(), monday)
	assert.Equal(t, engine.SourceHoliday, got.Source)
	assert.False(t, got.IsWorkDay)
}

func TestResolveExpected_WeeklyRestDay(t *testing.T) {
	t.Parallel()

	sunday := date(2024, time.February, 4)
	snap := emptySnapshot()
	snap.weekly[0] = schedule.WeeklySchedule{EmployeeID: "emp-1", DayOfWeek: 0, IsWorkDay: false}

	got := resolveExpected(snap, engine.DefaultPolicy(), sunday)
	assert.Equal(t, engine.SourceWeekly, got.Source)
	assert.False(t, got.IsWorkDay)
	assert.Nil(t, got.ShiftID)
}

func TestResolveExpected_SpecialRestUnlessMandatory(t *testing.T) {
	t.Parallel()

	monday := date(2024, time.February, 5)
	snap := emptySnapshot()
	snap.specials[dateKey(monday)] = schedule.SpecialDayAssignment{
		ID: "sp1", EmployeeID: "emp-1", Date: monday, Type: schedule.SpecialDayWeekend,
	}

	got := resolveExpected(snap, engine.DefaultPolicy(), monday)
	assert.Equal(t, engine.SourceSpecial, got.Source)
	assert.False(t, got.IsWorkDay)

	mandatory := snap.specials[dateKey(monday)]
	mandatory.IsMandatory = true
	snap.specials[dateKey(monday)] = mandatory

	got = resolveExpected(snap, engine.DefaultPolicy(), monday)
	assert.True(t, got.IsWorkDay)
}

func TestResolveExpected_Idempotent(t *testing.T) {
	t.Parallel()

	monday := date(2024, time.February, 5)
	shift := fixtures.NightShift("company-1")
	snap := emptySnapshot()
	snap.shifts[shift.ID] = shift
	shiftID := shift.ID
	snap.weekly[1] = schedule.WeeklySchedule{
		EmployeeID: "emp-1", DayOfWeek: 1, WorkShiftID: &shiftID, IsWorkDay: true,
	}

	first := resolveExpected(snap, engine.DefaultPolicy(), monday)
	second := resolveExpected(snap, engine.DefaultPolicy(), monday)
	assert.Equal(t, first, second)
}
