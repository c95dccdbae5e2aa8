package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/company"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Engine input errors
	case errors.Is(err, engine.ErrInvalidDate):
		BadRequest(w, "date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, engine.ErrInvalidMonth):
		BadRequest(w, "month must be in YYYY-MM format", nil)

	// Company / employee domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrDuplicateDate):
		Conflict(w, "A holiday already exists for this date")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrCalendarNotFound):
		NotFound(w, "Work calendar not found")
	case errors.Is(err, calendar.ErrIncompleteWeekdaySet):
		BadRequest(w, "Work calendar must define all seven weekdays", nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrWorkShiftNotFound):
		NotFound(w, "Work shift not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Weekly schedule not found")
	case errors.Is(err, schedule.ErrSpecialDayNotFound):
		NotFound(w, "Special day assignment not found")
	case errors.Is(err, schedule.ErrSpecialDayExists):
		Conflict(w, "A special day assignment already exists for this date")
	case errors.Is(err, schedule.ErrShiftInUse):
		Conflict(w, "Work shift is referenced by weekly schedules")
	case errors.Is(err, schedule.ErrInvalidSpecialDayType):
		BadRequest(w, "Invalid special day type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
