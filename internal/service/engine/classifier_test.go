package engine

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func workDayExpected(shift *schedule.WorkShift) engine.ExpectedShift {
	expected := engine.ExpectedShift{IsWorkDay: true, Source: engine.SourceWeekly}
	if shift != nil {
		expected.Shift = shift
		expected.ShiftID = &shift.ID
		expected.ShiftName = &shift.Name
	}
	return expected
}

func TestClassifyDay_NotScheduledIgnoresStrayEntry(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 4)
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(day.Add(9 * time.Hour))},
	}

	result := classifyDay("emp-1", day, time.UTC,
		engine.ExpectedShift{IsWorkDay: false, Source: engine.SourceHoliday},
		entries, engine.DefaultPolicy())

	// The entry never reclassifies the day; it surfaces as an incident.
	assert.Equal(t, engine.StatusNotScheduled, result.Status)
	assert.True(t, result.HasIncident)
	assert.True(t, result.HoursWorked.IsZero())
	assert.False(t, result.IsLate)
}

func TestClassifyDay_AbsentWithoutClockIn(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), nil, engine.DefaultPolicy())

	assert.Equal(t, engine.StatusAbsent, result.Status)
	assert.True(t, result.HasIncident)
	assert.True(t, result.HoursWorked.IsZero())
}

func TestClassifyDay_LatenessAgainstGrace(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1") // starts 09:00
	clockIn := day.Add(9*time.Hour + 15*time.Minute)
	clockOut := day.Add(17 * time.Hour)
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(clockIn), ClockOut: timePtr(clockOut)},
	}

	// Grace of 10 minutes: a 09:15 clock-in is late by the full 15 minutes,
	// counted from the scheduled start.
	policy := engine.DefaultPolicy()
	policy.GracePeriod = 10 * time.Minute
	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, policy)

	assert.Equal(t, engine.StatusLate, result.Status)
	assert.True(t, result.IsLate)
	assert.Equal(t, 15, result.LateMinutes)

	// Grace of 30 minutes: the same clock-in is on time.
	policy.GracePeriod = 30 * time.Minute
	result = classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, policy)

	assert.Equal(t, engine.StatusPresent, result.Status)
	assert.False(t, result.IsLate)
	assert.Equal(t, 0, result.LateMinutes)
}

func TestClassifyDay_ZeroGraceRequiresExactStart(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(day.Add(9*time.Hour + time.Minute))},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Equal(t, engine.StatusLate, result.Status)
	assert.Equal(t, 1, result.LateMinutes)
}

func TestClassifyDay_WorkDayWithoutShiftHasNoLateness(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	entries := []timeentry.TimeEntry{
		{
			ID:       "te-1",
			ClockIn:  timePtr(day.Add(11 * time.Hour)),
			ClockOut: timePtr(day.Add(19 * time.Hour)),
		},
	}

	// A calendar-default work day carries no shift anchor to measure against.
	expected := engine.ExpectedShift{IsWorkDay: true, Source: engine.SourceCalendarDefault}
	result := classifyDay("emp-1", day, time.UTC, expected, entries, engine.DefaultPolicy())

	assert.Equal(t, engine.StatusPresent, result.Status)
	assert.False(t, result.IsLate)
	assert.True(t, decimal.NewFromInt(8).Equal(result.HoursWorked))
}

func TestClassifyDay_TimezoneAnchorsShiftStart(t *testing.T) {
	t.Parallel()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	day := time.Date(2024, time.February, 5, 0, 0, 0, 0, jakarta)
	shift := fixtures.StandardOfficeShift("company-1")

	// 09:00 Jakarta is 02:00 UTC; a clock-in stored as 02:05 UTC is five
	// minutes late.
	clockIn := time.Date(2024, time.February, 5, 2, 5, 0, 0, time.UTC)
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(clockIn)},
	}

	result := classifyDay("emp-1", day, jakarta, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Equal(t, engine.StatusLate, result.Status)
	assert.Equal(t, 5, result.LateMinutes)
}

func TestCanonicalEntry_PrefersApprovedThenLatest(t *testing.T) {
	t.Parallel()

	base := date(2024, time.February, 5)
	entries := []timeentry.TimeEntry{
		{ID: "te-1", Status: timeentry.StatusPending, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "te-2", Status: timeentry.StatusApproved, UpdatedAt: base.Add(1 * time.Hour)},
		{ID: "te-3", Status: timeentry.StatusApproved, UpdatedAt: base.Add(2 * time.Hour)},
	}

	picked, duplicated := canonicalEntry(entries)
	require.NotNil(t, picked)
	assert.True(t, duplicated)
	assert.Equal(t, "te-3", picked.ID)

	// The pick does not depend on input order.
	reversed := []timeentry.TimeEntry{entries[2], entries[0], entries[1]}
	pickedAgain, _ := canonicalEntry(reversed)
	assert.Equal(t, picked.ID, pickedAgain.ID)
}

func TestCanonicalEntry_TieBreaksOnID(t *testing.T) {
	t.Parallel()

	ts := date(2024, time.February, 5)
	entries := []timeentry.TimeEntry{
		{ID: "te-b", Status: timeentry.StatusApproved, UpdatedAt: ts},
		{ID: "te-a", Status: timeentry.StatusApproved, UpdatedAt: ts},
	}

	picked, _ := canonicalEntry(entries)
	assert.Equal(t, "te-b", picked.ID)
}

func TestClassifyDay_DuplicateEntriesFlagged(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(day.Add(9 * time.Hour)), ClockOut: timePtr(day.Add(17 * time.Hour))},
		{ID: "te-2", ClockIn: timePtr(day.Add(9 * time.Hour))},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.True(t, result.HasIncident)
	assert.Contains(t, result.Incidents, "multiple time entries recorded for the same date")
	// Classification still completes.
	assert.Equal(t, engine.StatusPresent, result.Status)
}

func TestResolveHours_MissingClockOut(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	recorded := decimal.NewFromInt(7)
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(day.Add(9 * time.Hour)), TotalHours: decPtr(recorded)},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Contains(t, result.Incidents, "missing clock-out")
	assert.True(t, recorded.Equal(result.HoursWorked))
}

func TestResolveHours_ClockOutBeforeClockIn(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	entries := []timeentry.TimeEntry{
		{
			ID:       "te-1",
			ClockIn:  timePtr(day.Add(9 * time.Hour)),
			ClockOut: timePtr(day.Add(8 * time.Hour)),
		},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Contains(t, result.Incidents, "clock-out precedes clock-in")
	assert.True(t, result.HoursWorked.IsZero())
}

func TestResolveHours_RecordedTotalWithinTolerance(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	recorded := decimal.NewFromFloat(7.9) // derived is 8.0, within 15 minutes
	entries := []timeentry.TimeEntry{
		{
			ID:         "te-1",
			ClockIn:    timePtr(day.Add(9 * time.Hour)),
			ClockOut:   timePtr(day.Add(17 * time.Hour)),
			TotalHours: decPtr(recorded),
		},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.False(t, result.HasIncident)
	assert.True(t, recorded.Equal(result.HoursWorked))
}

func TestResolveHours_RecordedTotalInconsistent(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	recorded := decimal.NewFromInt(12) // derived is 8.0, well outside tolerance
	entries := []timeentry.TimeEntry{
		{
			ID:         "te-1",
			ClockIn:    timePtr(day.Add(9 * time.Hour)),
			ClockOut:   timePtr(day.Add(17 * time.Hour)),
			TotalHours: decPtr(recorded),
		},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Contains(t, result.Incidents, "recorded total hours inconsistent with clock events")
	assert.True(t, decimal.NewFromInt(8).Equal(result.HoursWorked))
}

func TestResolveHours_BreakSubtractedAndFlooredAtZero(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	entries := []timeentry.TimeEntry{
		{
			ID:           "te-1",
			ClockIn:      timePtr(day.Add(9 * time.Hour)),
			ClockOut:     timePtr(day.Add(9*time.Hour + 30*time.Minute)),
			BreakMinutes: 60,
		},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.True(t, result.HoursWorked.IsZero())
}

func TestClassifyDay_NightShiftSpansMidnight(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.NightShift("company-1") // 22:00 to 06:00 next day
	entries := []timeentry.TimeEntry{
		{
			ID:       "te-1",
			ClockIn:  timePtr(day.Add(22 * time.Hour)),
			ClockOut: timePtr(day.Add(30 * time.Hour)), // 06:00 on Feb 6
		},
	}

	result := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Equal(t, engine.StatusPresent, result.Status)
	assert.False(t, result.IsLate)
	assert.True(t, decimal.NewFromInt(8).Equal(result.HoursWorked))
}

func TestClassifyDay_Idempotent(t *testing.T) {
	t.Parallel()

	day := date(2024, time.February, 5)
	shift := fixtures.StandardOfficeShift("company-1")
	entries := []timeentry.TimeEntry{
		{ID: "te-1", ClockIn: timePtr(day.Add(9*time.Hour + 20*time.Minute))},
	}

	first := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())
	second := classifyDay("emp-1", day, time.UTC, workDayExpected(&shift), entries, engine.DefaultPolicy())

	assert.Equal(t, first, second)
}
