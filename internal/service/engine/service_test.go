package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/company"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================================
// IN-MEMORY FAKES
// ==========================================

type fakeCompanyRepo struct {
	companies map[string]company.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	comp, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return comp, nil
}

func (f *fakeCompanyRepo) ListAll(_ context.Context) ([]company.Company, error) {
	var all []company.Company
	for _, comp := range f.companies {
		all = append(all, comp)
	}
	return all, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID && emp.IsSchedulable() {
			active = append(active, emp)
		}
	}
	return active, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(_ context.Context, id string, companyID string) (holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.ID == id && h.CompanyID == companyID {
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) ListForRange(_ context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if h.CompanyID != companyID {
			continue
		}
		if h.IsRecurring || (!h.Date.Before(from) && !h.Date.After(to)) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) ListByCompany(_ context.Context, companyID string) ([]holiday.Holiday, error) {
	return f.ListForRange(context.Background(), companyID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (f *fakeHolidayRepo) Update(_ context.Context, _ holiday.Holiday) error { return nil }

func (f *fakeHolidayRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type fakeCalendarRepo struct {
	defaultCal *calendar.WorkCalendar
}

func (f *fakeCalendarRepo) Create(_ context.Context, cal calendar.WorkCalendar) (calendar.WorkCalendar, error) {
	return cal, nil
}

func (f *fakeCalendarRepo) GetByID(_ context.Context, _ string, _ string) (calendar.WorkCalendar, error) {
	return calendar.WorkCalendar{}, calendar.ErrCalendarNotFound
}

func (f *fakeCalendarRepo) GetDefault(_ context.Context, _ string) (*calendar.WorkCalendar, error) {
	return f.defaultCal, nil
}

func (f *fakeCalendarRepo) ListByCompany(_ context.Context, _ string) ([]calendar.WorkCalendar, error) {
	return nil, nil
}

func (f *fakeCalendarRepo) SetDefault(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeCalendarRepo) Update(_ context.Context, _ calendar.WorkCalendar) error { return nil }

func (f *fakeCalendarRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type fakeShiftRepo struct {
	shifts map[string]schedule.WorkShift
}

func (f *fakeShiftRepo) Create(_ context.Context, s schedule.WorkShift) (schedule.WorkShift, error) {
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string, _ string) (schedule.WorkShift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return schedule.WorkShift{}, schedule.ErrWorkShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) GetByIDs(_ context.Context, ids []string, _ string) (map[string]schedule.WorkShift, error) {
	out := make(map[string]schedule.WorkShift, len(ids))
	for _, id := range ids {
		if s, ok := f.shifts[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) ListByCompany(_ context.Context, _ string) ([]schedule.WorkShift, error) {
	return nil, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, _ schedule.WorkShift) error { return nil }

func (f *fakeShiftRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type fakeWeeklyRepo struct {
	rows []schedule.WeeklySchedule
}

func (f *fakeWeeklyRepo) Upsert(_ context.Context, row schedule.WeeklySchedule) (schedule.WeeklySchedule, error) {
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeWeeklyRepo) ListByEmployee(_ context.Context, employeeID string, companyID string) ([]schedule.WeeklySchedule, error) {
	var out []schedule.WeeklySchedule
	for _, row := range f.rows {
		if row.EmployeeID == employeeID && row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeWeeklyRepo) ListByCompany(_ context.Context, companyID string) ([]schedule.WeeklySchedule, error) {
	var out []schedule.WeeklySchedule
	for _, row := range f.rows {
		if row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeWeeklyRepo) Delete(_ context.Context, _ string, _ int, _ string) error { return nil }

type fakeSpecialRepo struct {
	assignments []schedule.SpecialDayAssignment
}

func (f *fakeSpecialRepo) Create(_ context.Context, a schedule.SpecialDayAssignment) (schedule.SpecialDayAssignment, error) {
	f.assignments = append(f.assignments, a)
	return a, nil
}

func (f *fakeSpecialRepo) ListForRange(_ context.Context, employeeID string, companyID string, from, to time.Time) ([]schedule.SpecialDayAssignment, error) {
	var out []schedule.SpecialDayAssignment
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID && a.CompanyID == companyID &&
			!a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeSpecialRepo) ListForDate(_ context.Context, companyID string, date time.Time) ([]schedule.SpecialDayAssignment, error) {
	var out []schedule.SpecialDayAssignment
	for _, a := range f.assignments {
		if a.CompanyID == companyID && a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeSpecialRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type fakeEntryRepo struct {
	entries []timeentry.TimeEntry
}

func (f *fakeEntryRepo) ListForRange(_ context.Context, employeeID string, companyID string, from, to time.Time) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.CompanyID == companyID &&
			!e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) ListForDate(_ context.Context, companyID string, date time.Time) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if e.CompanyID == companyID && e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ==========================================
// TEST ENVIRONMENT
// ==========================================

type testEnv struct {
	companies *fakeCompanyRepo
	employees *fakeEmployeeRepo
	holidays  *fakeHolidayRepo
	calendars *fakeCalendarRepo
	shifts    *fakeShiftRepo
	weekly    *fakeWeeklyRepo
	specials  *fakeSpecialRepo
	entries   *fakeEntryRepo
	policy    engine.Policy
}

const (
	testCompanyID  = "company-1"
	testEmployeeID = "emp-1"
)

func newTestEnv() *testEnv {
	cal := fixtures.DefaultWorkCalendar(testCompanyID)
	return &testEnv{
		companies: &fakeCompanyRepo{companies: map[string]company.Company{
			testCompanyID: {ID: testCompanyID, Name: "Acme", Timezone: "UTC"},
		}},
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{
			testEmployeeID: {ID: testEmployeeID, CompanyID: testCompanyID, FullName: "Alex", Status: employee.StatusActive},
		}},
		holidays:  &fakeHolidayRepo{},
		calendars: &fakeCalendarRepo{defaultCal: &cal},
		shifts:    &fakeShiftRepo{shifts: map[string]schedule.WorkShift{}},
		weekly:    &fakeWeeklyRepo{},
		specials:  &fakeSpecialRepo{},
		entries:   &fakeEntryRepo{},
		policy:    engine.DefaultPolicy(),
	}
}

func (e *testEnv) service() engine.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngineService(
		e.companies, e.employees, e.holidays, e.calendars,
		e.shifts, e.weekly, e.specials, e.entries,
		e.policy, nil, logger,
	)
}

// assignStandardWeek gives the employee the standard shift Monday to Friday.
func (e *testEnv) assignStandardWeek(employeeID string) schedule.WorkShift {
	shift := fixtures.StandardOfficeShift(testCompanyID)
	e.shifts.shifts[shift.ID] = shift
	shiftID := shift.ID
	for dow := 1; dow <= 5; dow++ {
		e.weekly.rows = append(e.weekly.rows, schedule.WeeklySchedule{
			ID:          shiftID + "-" + string(rune('0'+dow)),
			EmployeeID:  employeeID,
			CompanyID:   testCompanyID,
			DayOfWeek:   dow,
			WorkShiftID: &shiftID,
			IsWorkDay:   true,
		})
	}
	for _, dow := range []int{0, 6} {
		e.weekly.rows = append(e.weekly.rows, schedule.WeeklySchedule{
			ID:         shiftID + "-r" + string(rune('0'+dow)),
			EmployeeID: employeeID,
			CompanyID:  testCompanyID,
			DayOfWeek:  dow,
			IsWorkDay:  false,
		})
	}
	return shift
}

func (e *testEnv) addEntry(employeeID string, day time.Time, clockInHour, clockOutHour int) {
	clockIn := day.Add(time.Duration(clockInHour) * time.Hour)
	clockOut := day.Add(time.Duration(clockOutHour) * time.Hour)
	e.entries.entries = append(e.entries.entries, timeentry.TimeEntry{
		ID:         employeeID + "-" + dateKey(day),
		EmployeeID: employeeID,
		CompanyID:  testCompanyID,
		Date:       day,
		ClockIn:    &clockIn,
		ClockOut:   &clockOut,
		Status:     timeentry.StatusApproved,
	})
}

// ==========================================
// TESTS
// ==========================================

func TestResolveExpectedShift_WeeklyAssignment(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	shift := env.assignStandardWeek(testEmployeeID)
	svc := env.service()

	expected, err := svc.ResolveExpectedShift(context.Background(), testEmployeeID, testCompanyID, "2024-02-05")
	require.NoError(t, err)

	assert.True(t, expected.IsWorkDay)
	assert.Equal(t, engine.SourceWeekly, expected.Source)
	require.NotNil(t, expected.ShiftID)
	assert.Equal(t, shift.ID, *expected.ShiftID)
}

func TestResolveExpectedShift_InvalidDate(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	svc := env.service()

	_, err := svc.ResolveExpectedShift(context.Background(), testEmployeeID, testCompanyID, "05-02-2024")
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
}

func TestResolveExpectedShift_InactiveEmployee(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.employees.employees["emp-2"] = employee.Employee{
		ID: "emp-2", CompanyID: testCompanyID, Status: employee.StatusInactive,
	}
	svc := env.service()

	_, err := svc.ResolveExpectedShift(context.Background(), "emp-2", testCompanyID, "2024-02-05")
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestResolveExpectedShift_UnknownCompany(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	svc := env.service()

	_, err := svc.ResolveExpectedShift(context.Background(), testEmployeeID, "company-x", "2024-02-05")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestClassifyDay_ThroughService(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.assignStandardWeek(testEmployeeID)
	monday := date(2024, time.February, 5)
	env.addEntry(testEmployeeID, monday, 9, 17)
	svc := env.service()

	result, err := svc.ClassifyDay(context.Background(), testEmployeeID, testCompanyID, "2024-02-05")
	require.NoError(t, err)

	assert.Equal(t, engine.StatusPresent, result.Status)
	assert.False(t, result.HasIncident)
	assert.Equal(t, "2024-02-05", result.Date)
}

func TestAggregateMonth_February2024(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.assignStandardWeek(testEmployeeID)

	// Clock every weekday of the month.
	first := date(2024, time.February, 1)
	for d := 0; d < 29; d++ {
		day := first.AddDate(0, 0, d)
		if wd := day.Weekday(); wd >= time.Monday && wd <= time.Friday {
			env.addEntry(testEmployeeID, day, 9, 17)
		}
	}
	svc := env.service()

	kpis, err := svc.AggregateMonth(context.Background(), testEmployeeID, testCompanyID, "2024-02")
	require.NoError(t, err)

	// 2024 is a leap year; February has 29 days and 21 weekdays.
	assert.Equal(t, 29, kpis.TotalDays)
	assert.Equal(t, 21, kpis.WorkDays)
	assert.Equal(t, 21, kpis.PresentDays)
	assert.Equal(t, 0, kpis.LateDays)
	assert.Equal(t, 0, kpis.AbsentDays)
	assert.Equal(t, 8, kpis.NotScheduledDays)
	assert.Equal(t, kpis.TotalDays,
		kpis.PresentDays+kpis.LateDays+kpis.AbsentDays+kpis.NotScheduledDays)
	assert.Equal(t, 1.0, kpis.AttendanceRate())
	assert.Len(t, kpis.Days, 29)
}

func TestAggregateMonth_CountsPartitionTheMonth(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.assignStandardWeek(testEmployeeID)

	// A mixed month: one late day, several absences, the rest untouched.
	env.addEntry(testEmployeeID, date(2024, time.February, 5), 10, 17) // late
	env.addEntry(testEmployeeID, date(2024, time.February, 6), 9, 17)  // present
	svc := env.service()

	kpis, err := svc.AggregateMonth(context.Background(), testEmployeeID, testCompanyID, "2024-02")
	require.NoError(t, err)

	assert.Equal(t, 29, kpis.TotalDays)
	assert.Equal(t, 1, kpis.LateDays)
	assert.Equal(t, 1, kpis.PresentDays)
	assert.Equal(t, 19, kpis.AbsentDays)
	assert.Equal(t, 8, kpis.NotScheduledDays)
	assert.Equal(t, kpis.TotalDays,
		kpis.PresentDays+kpis.LateDays+kpis.AbsentDays+kpis.NotScheduledDays)
	// Absences count as incidents.
	assert.GreaterOrEqual(t, kpis.Incidents, 19)
}

func TestAggregateMonth_ZeroWorkDaysHasZeroRate(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	// Rest on all seven weekdays.
	for dow := 0; dow < 7; dow++ {
		env.weekly.rows = append(env.weekly.rows, schedule.WeeklySchedule{
			ID:         "w-" + string(rune('0'+dow)),
			EmployeeID: testEmployeeID,
			CompanyID:  testCompanyID,
			DayOfWeek:  dow,
			IsWorkDay:  false,
		})
	}
	svc := env.service()

	kpis, err := svc.AggregateMonth(context.Background(), testEmployeeID, testCompanyID, "2024-02")
	require.NoError(t, err)

	assert.Equal(t, 0, kpis.WorkDays)
	assert.Equal(t, 0.0, kpis.AttendanceRate())
	assert.True(t, kpis.AverageHoursPerDay().IsZero())
}

func TestAggregateMonth_InvalidMonth(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	svc := env.service()

	_, err := svc.AggregateMonth(context.Background(), testEmployeeID, testCompanyID, "February 2024")
	assert.ErrorIs(t, err, engine.ErrInvalidMonth)
}

func TestAggregateCompanyDay_FansOutOverActiveEmployees(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.employees.employees["emp-2"] = employee.Employee{
		ID: "emp-2", CompanyID: testCompanyID, FullName: "Blake", Status: employee.StatusActive,
	}
	env.employees.employees["emp-3"] = employee.Employee{
		ID: "emp-3", CompanyID: testCompanyID, FullName: "Casey", Status: employee.StatusInactive,
	}
	env.assignStandardWeek(testEmployeeID)
	env.assignStandardWeek("emp-2")

	monday := date(2024, time.February, 5)
	env.addEntry(testEmployeeID, monday, 9, 17)
	svc := env.service()

	summary, err := svc.AggregateCompanyDay(context.Background(), testCompanyID, "2024-02-05")
	require.NoError(t, err)

	// The inactive employee is excluded entirely.
	assert.Equal(t, 2, summary.Active)
	assert.Equal(t, 2, summary.Scheduled)
	require.Len(t, summary.PerEmployee, 2)
	assert.Empty(t, summary.Failed)

	// Results are ordered by employee ID.
	assert.Equal(t, testEmployeeID, summary.PerEmployee[0].EmployeeID)
	assert.Equal(t, "emp-2", summary.PerEmployee[1].EmployeeID)

	assert.Equal(t, engine.StatusPresent, summary.PerEmployee[0].Status)
	assert.Equal(t, engine.StatusAbsent, summary.PerEmployee[1].Status)
}

func TestAggregateCompanyDay_WeekendNobodyScheduled(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.assignStandardWeek(testEmployeeID)
	svc := env.service()

	summary, err := svc.AggregateCompanyDay(context.Background(), testCompanyID, "2024-02-04")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Active)
	assert.Equal(t, 0, summary.Scheduled)
	require.Len(t, summary.PerEmployee, 1)
	assert.Equal(t, engine.StatusNotScheduled, summary.PerEmployee[0].Status)
}
