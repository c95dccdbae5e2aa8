package calendar

import "errors"

var (
	ErrCalendarNotFound     = errors.New("work calendar not found")
	ErrDefaultAlreadyExists = errors.New("company already has a default work calendar")
	ErrIncompleteWeekdaySet = errors.New("work calendar must define all seven weekdays")
)
