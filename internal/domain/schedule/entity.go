package schedule

import "time"

const minutesPerDay = 24 * 60

// WorkShift describes one shift template. Times are stored as minute-of-day
// anchors relative to the local midnight of the shift's start date, so a
// shift spanning midnight is an ordinary interval: when IsNightShift is set,
// the end anchor belongs to the following calendar day.
type WorkShift struct {
	ID               string
	CompanyID        string
	Name             string
	StartMinute      int // minutes after local midnight, 0..1439
	EndMinute        int // minutes after local midnight of the end day
	BreakStartMinute *int
	BreakEndMinute   *int
	IsNightShift     bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EndOffset returns the shift end as minutes elapsed since the shift-start
// anchor's midnight. For night shifts the end falls past 24:00.
func (s WorkShift) EndOffset() int {
	if s.IsNightShift {
		return s.EndMinute + minutesPerDay
	}
	return s.EndMinute
}

// DurationMinutes returns the scheduled span from start to end, breaks included.
func (s WorkShift) DurationMinutes() int {
	return s.EndOffset() - s.StartMinute
}

// BreakMinutes returns the scheduled break length, zero when no break is set.
// A break that starts before the shift-start anchor (night shift break after
// midnight) is interpreted on the following day.
func (s WorkShift) BreakMinutes() int {
	if s.BreakStartMinute == nil || s.BreakEndMinute == nil {
		return 0
	}
	start, end := *s.BreakStartMinute, *s.BreakEndMinute
	if start < s.StartMinute {
		start += minutesPerDay
	}
	if end < s.StartMinute {
		end += minutesPerDay
	}
	if end <= start {
		return 0
	}
	return end - start
}

// StartOn anchors the shift start on a calendar date in the given location.
func (s WorkShift) StartOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.StartMinute/60, s.StartMinute%60, 0, 0, loc)
}

// WeeklySchedule is an employee's recurring assignment for one weekday.
// One row per employee+weekday; the latest write wins (upsert semantics).
type WeeklySchedule struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	DayOfWeek   int // 0=Sunday .. 6=Saturday
	WorkShiftID *string
	IsWorkDay   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SpecialDayAssignment overrides the weekly schedule for one exact date.
type SpecialDayAssignment struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Date        time.Time
	Type        SpecialDayType
	IsMandatory bool
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SpecialDayType string

const (
	SpecialDayGuard     SpecialDayType = "GUARD"
	SpecialDayHoliday   SpecialDayType = "HOLIDAY"
	SpecialDayWeekend   SpecialDayType = "WEEKEND"
	SpecialDayEmergency SpecialDayType = "EMERGENCY"
	SpecialDayOvertime  SpecialDayType = "OVERTIME"
)

var SpecialDayTypeValues = []string{
	string(SpecialDayGuard),
	string(SpecialDayHoliday),
	string(SpecialDayWeekend),
	string(SpecialDayEmergency),
	string(SpecialDayOvertime),
}

// ImpliesWorkDay resolves the assignment type to an expected work-day flag.
// GUARD, EMERGENCY and OVERTIME always require work; WEEKEND and HOLIDAY
// grant rest unless the assignment is mandatory.
func (a SpecialDayAssignment) ImpliesWorkDay() bool {
	switch a.Type {
	case SpecialDayGuard, SpecialDayEmergency, SpecialDayOvertime:
		return true
	case SpecialDayWeekend, SpecialDayHoliday:
		return a.IsMandatory
	default:
		return a.IsMandatory
	}
}
