package schedule

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// WORK SHIFT DTOs
// ========================================

type CreateWorkShiftRequest struct {
	Name             string `json:"name"`
	StartMinute      int    `json:"start_minute"`
	EndMinute        int    `json:"end_minute"`
	BreakStartMinute *int   `json:"break_start_minute,omitempty"`
	BreakEndMinute   *int   `json:"break_end_minute,omitempty"`
	IsNightShift     bool   `json:"is_night_shift"`
}

func (r *CreateWorkShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidMinuteOfDay(r.StartMinute) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_minute",
			Message: "start_minute must be between 0 and 1439",
		})
	}

	if !validator.IsValidMinuteOfDay(r.EndMinute) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_minute",
			Message: "end_minute must be between 0 and 1439",
		})
	}

	if !r.IsNightShift && r.EndMinute <= r.StartMinute {
		errs = append(errs, validator.ValidationError{
			Field:   "end_minute",
			Message: "end_minute must be after start_minute unless is_night_shift is set",
		})
	}

	if (r.BreakStartMinute == nil) != (r.BreakEndMinute == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start_minute",
			Message: "break start and end must be set together",
		})
	}

	if r.BreakStartMinute != nil && !validator.IsValidMinuteOfDay(*r.BreakStartMinute) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start_minute",
			Message: "break_start_minute must be between 0 and 1439",
		})
	}

	if r.BreakEndMinute != nil && !validator.IsValidMinuteOfDay(*r.BreakEndMinute) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end_minute",
			Message: "break_end_minute must be between 0 and 1439",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkShiftResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StartMinute      int    `json:"start_minute"`
	EndMinute        int    `json:"end_minute"`
	BreakStartMinute *int   `json:"break_start_minute,omitempty"`
	BreakEndMinute   *int   `json:"break_end_minute,omitempty"`
	IsNightShift     bool   `json:"is_night_shift"`
}

// ========================================
// WEEKLY SCHEDULE DTOs
// ========================================

type UpsertWeeklyScheduleRequest struct {
	EmployeeID  string  `json:"employee_id"`
	DayOfWeek   int     `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	WorkShiftID *string `json:"work_shift_id,omitempty"`
	IsWorkDay   bool    `json:"is_work_day"`
}

func (r *UpsertWeeklyScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDayOfWeek(r.DayOfWeek) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week must be between 0 and 6",
		})
	}

	if r.IsWorkDay && (r.WorkShiftID == nil || validator.IsEmpty(*r.WorkShiftID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_shift_id",
			Message: "work_shift_id is required on a work day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeeklyScheduleResponse struct {
	EmployeeID  string  `json:"employee_id"`
	DayOfWeek   int     `json:"day_of_week"`
	WorkShiftID *string `json:"work_shift_id,omitempty"`
	IsWorkDay   bool    `json:"is_work_day"`
}

// ========================================
// SPECIAL DAY DTOs
// ========================================

type CreateSpecialDayRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"`
	IsMandatory bool    `json:"is_mandatory"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateSpecialDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.Type, SpecialDayTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of GUARD, HOLIDAY, WEEKEND, EMERGENCY, OVERTIME",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SpecialDayResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	IsMandatory bool    `json:"is_mandatory"`
	Notes       *string `json:"notes,omitempty"`
}
