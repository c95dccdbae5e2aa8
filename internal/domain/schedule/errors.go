package schedule

import "errors"

var (
	ErrWorkShiftNotFound     = errors.New("work shift not found")
	ErrScheduleNotFound      = errors.New("weekly schedule not found")
	ErrSpecialDayNotFound    = errors.New("special day assignment not found")
	ErrSpecialDayExists      = errors.New("a special day assignment already exists for this date")
	ErrShiftInUse            = errors.New("work shift is referenced by weekly schedules")
	ErrInvalidSpecialDayType = errors.New("invalid special day type")
)
