package calendar

import "time"

// WorkCalendar is a company's default map of working weekdays. A company has
// at most one calendar flagged IsDefault; when none exists every weekday is
// treated as a work day (see engine.DefaultWeekdayIsWorkDay).
type WorkCalendar struct {
	ID        string
	CompanyID string
	Name      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Days []WorkDay
}

// WorkDay is one weekday flag of a calendar. DayOfWeek follows time.Weekday
// numbering: 0=Sunday .. 6=Saturday.
type WorkDay struct {
	ID             string
	WorkCalendarID string
	DayOfWeek      int
	IsWorkDay      bool
}

// DayFor returns the WorkDay row for a weekday, nil when the calendar has no
// row for it.
func (c *WorkCalendar) DayFor(dayOfWeek time.Weekday) *WorkDay {
	for i := range c.Days {
		if c.Days[i].DayOfWeek == int(dayOfWeek) {
			return &c.Days[i]
		}
	}
	return nil
}
