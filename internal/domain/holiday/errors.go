package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrDuplicateDate   = errors.New("a holiday already exists for this date")
)
