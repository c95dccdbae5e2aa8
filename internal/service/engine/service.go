package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/company"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 8

// EngineService implements engine.Service. Resolution follows a strict
// load-then-compute split: every data-source read happens up front in a
// batched snapshot, and per-date classification is a pure function over it.
type EngineService struct {
	companyRepo  company.CompanyRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
	calendarRepo calendar.WorkCalendarRepository
	shiftRepo    schedule.WorkShiftRepository
	weeklyRepo   schedule.WeeklyScheduleRepository
	specialRepo  schedule.SpecialDayRepository
	entryRepo    timeentry.TimeEntryRepository

	policy         engine.Policy
	kpiCache       *cache.KPICache
	logger         *slog.Logger
	maxConcurrency int
}

func NewEngineService(
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	calendarRepo calendar.WorkCalendarRepository,
	shiftRepo schedule.WorkShiftRepository,
	weeklyRepo schedule.WeeklyScheduleRepository,
	specialRepo schedule.SpecialDayRepository,
	entryRepo timeentry.TimeEntryRepository,
	policy engine.Policy,
	kpiCache *cache.KPICache,
	logger *slog.Logger,
) engine.Service {
	return &EngineService{
		companyRepo:    companyRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		calendarRepo:   calendarRepo,
		shiftRepo:      shiftRepo,
		weeklyRepo:     weeklyRepo,
		specialRepo:    specialRepo,
		entryRepo:      entryRepo,
		policy:         policy,
		kpiCache:       kpiCache,
		logger:         logger,
		maxConcurrency: defaultMaxConcurrency,
	}
}

// location resolves the timezone resolution order: company timezone, then
// the engine default, then UTC.
func (s *EngineService) location(comp company.Company) *time.Location {
	name := comp.Timezone
	if name == "" {
		name = s.policy.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		s.logger.Warn("unknown timezone, falling back to UTC",
			slog.String("company_id", comp.ID),
			slog.String("timezone", name))
		return time.UTC
	}
	return loc
}

func parseDate(date string, loc *time.Location) (time.Time, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return time.Time{}, engine.ErrInvalidDate
	}
	t, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, engine.ErrInvalidDate
	}
	return t, nil
}

// monthBounds returns the first and last calendar date of a month.
func monthBounds(month string, loc *time.Location) (time.Time, time.Time, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return time.Time{}, time.Time{}, engine.ErrInvalidMonth
	}
	first, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return time.Time{}, time.Time{}, engine.ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// schedulableEmployee fetches the employee and rejects non-active ones.
func (s *EngineService) schedulableEmployee(ctx context.Context, employeeID, companyID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsSchedulable() {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

// loadSnapshot batch-fetches everything needed to resolve one employee over
// [from, to].
func (s *EngineService) loadSnapshot(ctx context.Context, employeeID, companyID string, from, to time.Time, loc *time.Location) (*snapshot, error) {
	holidays, err := s.holidayRepo.ListForRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	cal, err := s.calendarRepo.GetDefault(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load default work calendar: %w", err)
	}

	weeklyRows, err := s.weeklyRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly schedule: %w", err)
	}

	shifts, err := s.shiftRepo.GetByIDs(ctx, shiftIDsOf(weeklyRows), companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work shifts: %w", err)
	}

	specialRows, err := s.specialRepo.ListForRange(ctx, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load special day assignments: %w", err)
	}
	specials := make(map[string]schedule.SpecialDayAssignment, len(specialRows))
	for _, row := range specialRows {
		specials[dateKey(row.Date)] = row
	}

	entryRows, err := s.entryRepo.ListForRange(ctx, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	entries := make(map[string][]timeentry.TimeEntry)
	for _, row := range entryRows {
		key := dateKey(row.Date)
		entries[key] = append(entries[key], row)
	}

	return &snapshot{
		loc:      loc,
		holidays: holidays,
		cal:      cal,
		weekly:   weeklyByDay(weeklyRows),
		shifts:   shifts,
		specials: specials,
		entries:  entries,
	}, nil
}

func (s *EngineService) ResolveExpectedShift(ctx context.Context, employeeID, companyID, date string) (engine.ExpectedShift, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return engine.ExpectedShift{}, err
	}
	loc := s.location(comp)

	day, err := parseDate(date, loc)
	if err != nil {
		return engine.ExpectedShift{}, err
	}

	if _, err := s.schedulableEmployee(ctx, employeeID, companyID); err != nil {
		return engine.ExpectedShift{}, err
	}

	snap, err := s.loadSnapshot(ctx, employeeID, companyID, day, day, loc)
	if err != nil {
		return engine.ExpectedShift{}, err
	}

	return resolveExpected(snap, s.policy, day), nil
}

func (s *EngineService) ClassifyDay(ctx context.Context, employeeID, companyID, date string) (engine.DayResult, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return engine.DayResult{}, err
	}
	loc := s.location(comp)

	day, err := parseDate(date, loc)
	if err != nil {
		return engine.DayResult{}, err
	}

	if _, err := s.schedulableEmployee(ctx, employeeID, companyID); err != nil {
		return engine.DayResult{}, err
	}

	snap, err := s.loadSnapshot(ctx, employeeID, companyID, day, day, loc)
	if err != nil {
		return engine.DayResult{}, err
	}

	expected := resolveExpected(snap, s.policy, day)
	return classifyDay(employeeID, day, loc, expected, snap.entries[dateKey(day)], s.policy), nil
}

func (s *EngineService) AggregateMonth(ctx context.Context, employeeID, companyID, month string) (engine.MonthlyKPIs, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return engine.MonthlyKPIs{}, err
	}
	loc := s.location(comp)

	first, last, err := monthBounds(month, loc)
	if err != nil {
		return engine.MonthlyKPIs{}, err
	}

	if _, err := s.schedulableEmployee(ctx, employeeID, companyID); err != nil {
		return engine.MonthlyKPIs{}, err
	}

	if cached, err := s.kpiCache.GetMonthlyKPIs(ctx, companyID, employeeID, month); err != nil {
		s.logger.Warn("kpi cache read failed",
			slog.String("employee_id", employeeID),
			slog.String("month", month),
			slog.Any("error", err))
	} else if cached != nil {
		return *cached, nil
	}

	snap, err := s.loadSnapshot(ctx, employeeID, companyID, first, last, loc)
	if err != nil {
		return engine.MonthlyKPIs{}, err
	}

	totalDays := last.Day()
	days := make([]engine.DayResult, totalDays)

	// Classification is pure over the snapshot, so dates fan out freely. The
	// slice is pre-sized and written by index, keeping output order stable.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i := 0; i < totalDays; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			day := first.AddDate(0, 0, i)
			expected := resolveExpected(snap, s.policy, day)
			days[i] = classifyDay(employeeID, day, loc, expected, snap.entries[dateKey(day)], s.policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return engine.MonthlyKPIs{}, err
	}

	kpis := reduceMonth(employeeID, month, days)

	if err := s.kpiCache.SetMonthlyKPIs(ctx, companyID, kpis); err != nil {
		s.logger.Warn("kpi cache write failed",
			slog.String("employee_id", employeeID),
			slog.String("month", month),
			slog.Any("error", err))
	}

	return kpis, nil
}

// reduceMonth folds per-day results into monthly totals. The status counts
// partition the month by construction: every day lands in exactly one
// bucket.
func reduceMonth(employeeID, month string, days []engine.DayResult) engine.MonthlyKPIs {
	kpis := engine.MonthlyKPIs{
		EmployeeID: employeeID,
		Month:      month,
		TotalDays:  len(days),
		TotalHours: decimal.Zero,
		Days:       days,
	}

	for _, day := range days {
		if day.Expected.IsWorkDay {
			kpis.WorkDays++
		}
		switch day.Status {
		case engine.StatusPresent:
			kpis.PresentDays++
		case engine.StatusLate:
			kpis.LateDays++
		case engine.StatusAbsent:
			kpis.AbsentDays++
		case engine.StatusNotScheduled:
			kpis.NotScheduledDays++
		}
		if day.HasIncident {
			kpis.Incidents++
		}
		kpis.TotalHours = kpis.TotalHours.Add(day.HoursWorked)
	}

	return kpis
}

func (s *EngineService) AggregateCompanyDay(ctx context.Context, companyID, date string) (engine.CompanyDaySummary, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return engine.CompanyDaySummary{}, err
	}
	loc := s.location(comp)

	day, err := parseDate(date, loc)
	if err != nil {
		return engine.CompanyDaySummary{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return engine.CompanyDaySummary{}, err
	}

	shared, err := s.loadCompanyDay(ctx, companyID, day)
	if err != nil {
		return engine.CompanyDaySummary{}, err
	}

	summary := engine.CompanyDaySummary{
		CompanyID: companyID,
		Date:      dateKey(day),
		Active:    len(employees),
	}

	results := make([]engine.DayResult, len(employees))
	var mu sync.Mutex
	failed := make(map[string]string)

	// One employee's bad data must not sink the rest: a failure is recorded
	// against that employee instead of aborting the group.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("day classification panicked",
						slog.String("employee_id", emp.ID),
						slog.String("date", dateKey(day)),
						slog.Any("panic", r))
					mu.Lock()
					failed[emp.ID] = fmt.Sprintf("classification failed: %v", r)
					mu.Unlock()
				}
			}()
			snap := shared.snapshotFor(emp.ID, loc)
			expected := resolveExpected(snap, s.policy, day)
			results[i] = classifyDay(emp.ID, day, loc, expected, snap.entries[dateKey(day)], s.policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return engine.CompanyDaySummary{}, err
	}

	perEmployee := make([]engine.DayResult, 0, len(results))
	for _, r := range results {
		if r.EmployeeID == "" {
			continue
		}
		perEmployee = append(perEmployee, r)
		if r.Expected.IsWorkDay {
			summary.Scheduled++
		}
	}
	sort.Slice(perEmployee, func(i, j int) bool {
		return perEmployee[i].EmployeeID < perEmployee[j].EmployeeID
	})

	summary.PerEmployee = perEmployee
	if len(failed) > 0 {
		summary.Failed = failed
	}

	return summary, nil
}

// companyDayData holds the company-wide reads for one date, grouped so each
// employee's snapshot is assembled without further I/O.
type companyDayData struct {
	holidays []holiday.Holiday
	cal      *calendar.WorkCalendar
	weekly   map[string][]schedule.WeeklySchedule
	shifts   map[string]schedule.WorkShift
	specials map[string]schedule.SpecialDayAssignment // by employee ID
	entries  map[string][]timeentry.TimeEntry         // by employee ID
	date     time.Time
}

func (s *EngineService) loadCompanyDay(ctx context.Context, companyID string, day time.Time) (*companyDayData, error) {
	holidays, err := s.holidayRepo.ListForRange(ctx, companyID, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	cal, err := s.calendarRepo.GetDefault(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load default work calendar: %w", err)
	}

	weeklyRows, err := s.weeklyRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly schedules: %w", err)
	}
	weekly := make(map[string][]schedule.WeeklySchedule)
	for _, row := range weeklyRows {
		weekly[row.EmployeeID] = append(weekly[row.EmployeeID], row)
	}

	shifts, err := s.shiftRepo.GetByIDs(ctx, shiftIDsOf(weeklyRows), companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work shifts: %w", err)
	}

	specialRows, err := s.specialRepo.ListForDate(ctx, companyID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load special day assignments: %w", err)
	}
	specials := make(map[string]schedule.SpecialDayAssignment, len(specialRows))
	for _, row := range specialRows {
		specials[row.EmployeeID] = row
	}

	entryRows, err := s.entryRepo.ListForDate(ctx, companyID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	entries := make(map[string][]timeentry.TimeEntry)
	for _, row := range entryRows {
		entries[row.EmployeeID] = append(entries[row.EmployeeID], row)
	}

	return &companyDayData{
		holidays: holidays,
		cal:      cal,
		weekly:   weekly,
		shifts:   shifts,
		specials: specials,
		entries:  entries,
		date:     day,
	}, nil
}

// snapshotFor projects the company-wide reads down to one employee.
func (d *companyDayData) snapshotFor(employeeID string, loc *time.Location) *snapshot {
	specials := make(map[string]schedule.SpecialDayAssignment, 1)
	if special, ok := d.specials[employeeID]; ok {
		specials[dateKey(d.date)] = special
	}
	entries := make(map[string][]timeentry.TimeEntry, 1)
	if rows, ok := d.entries[employeeID]; ok {
		entries[dateKey(d.date)] = rows
	}
	return &snapshot{
		loc:      loc,
		holidays: d.holidays,
		cal:      d.cal,
		weekly:   weeklyByDay(d.weekly[employeeID]),
		shifts:   d.shifts,
		specials: specials,
		entries:  entries,
	}
}
