package holiday

import "time"

type Holiday struct {
	ID          string
	CompanyID   string
	Name        string
	Date        time.Time // calendar date; for recurring holidays the year is ignored
	IsRecurring bool
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MatchesDate reports whether the holiday applies to the given calendar date.
// Recurring holidays match on month and day only.
func (h Holiday) MatchesDate(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() &&
		h.Date.Month() == date.Month() &&
		h.Date.Day() == date.Day()
}
