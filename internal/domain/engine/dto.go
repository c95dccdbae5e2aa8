package engine

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// ResolutionSource records which rule produced an ExpectedShift. It exists
// for explainability and debugging; callers must not branch on it.
type ResolutionSource string

const (
	SourceSpecial         ResolutionSource = "special"
	SourceHoliday         ResolutionSource = "holiday"
	SourceWeekly          ResolutionSource = "weekly"
	SourceCalendarDefault ResolutionSource = "calendar-default"
)

// ExpectedShift is the Schedule Resolver's verdict for one employee-date.
type ExpectedShift struct {
	IsWorkDay bool                `json:"is_work_day"`
	Shift     *schedule.WorkShift `json:"-"`
	ShiftID   *string             `json:"shift_id,omitempty"`
	ShiftName *string             `json:"shift_name,omitempty"`
	Source    ResolutionSource    `json:"source"`
}

type DayStatus string

const (
	StatusNotScheduled DayStatus = "not_scheduled"
	StatusPresent      DayStatus = "present"
	StatusLate         DayStatus = "late"
	StatusAbsent       DayStatus = "absent"
)

// DayResult is the Attendance Classifier's verdict for one employee-date.
type DayResult struct {
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Expected    ExpectedShift   `json:"expected"`
	Status      DayStatus       `json:"status"`
	IsLate      bool            `json:"is_late"`
	LateMinutes int             `json:"late_minutes"`
	HasIncident bool            `json:"has_incident"`
	Incidents   []string        `json:"incidents,omitempty"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
}

// AddIncident flags the day and records the reason.
func (r *DayResult) AddIncident(reason string) {
	r.HasIncident = true
	r.Incidents = append(r.Incidents, reason)
}

// MonthlyKPIs is the Monthly Aggregator's reduction over one employee-month.
// Counts always partition the month:
// PresentDays + LateDays + AbsentDays + NotScheduledDays == TotalDays.
type MonthlyKPIs struct {
	EmployeeID       string          `json:"employee_id"`
	Month            string          `json:"month"` // YYYY-MM
	TotalDays        int             `json:"total_days"`
	WorkDays         int             `json:"work_days"`
	PresentDays      int             `json:"present_days"`
	LateDays         int             `json:"late_days"`
	AbsentDays       int             `json:"absent_days"`
	NotScheduledDays int             `json:"not_scheduled_days"`
	Incidents        int             `json:"incidents"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	Days             []DayResult     `json:"days,omitempty"`
}

// AttendanceRate returns PresentDays / WorkDays, 0 when no work days exist.
func (k MonthlyKPIs) AttendanceRate() float64 {
	if k.WorkDays == 0 {
		return 0
	}
	return float64(k.PresentDays) / float64(k.WorkDays)
}

// AverageHoursPerDay returns TotalHours / PresentDays, zero when no present
// days exist.
func (k MonthlyKPIs) AverageHoursPerDay() decimal.Decimal {
	if k.PresentDays == 0 {
		return decimal.Zero
	}
	return k.TotalHours.Div(decimal.NewFromInt(int64(k.PresentDays)))
}

// CompanyDaySummary is the company-wide fan-out result for one date.
// Failed holds per-employee failures that did not abort sibling
// computations.
type CompanyDaySummary struct {
	CompanyID   string            `json:"company_id"`
	Date        string            `json:"date"`
	Scheduled   int               `json:"scheduled"`
	Active      int               `json:"active"`
	PerEmployee []DayResult       `json:"per_employee"`
	Failed      map[string]string `json:"failed,omitempty"`
}
