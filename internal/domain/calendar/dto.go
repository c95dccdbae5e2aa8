package calendar

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

type WorkDayInput struct {
	DayOfWeek int  `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	IsWorkDay bool `json:"is_work_day"`
}

type CreateWorkCalendarRequest struct {
	Name      string         `json:"name"`
	IsDefault bool           `json:"is_default"`
	Days      []WorkDayInput `json:"days"`
}

func (r *CreateWorkCalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(r.Days) != 7 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "exactly seven weekday entries are required",
		})
	} else {
		seen := make(map[int]bool, 7)
		for _, d := range r.Days {
			if !validator.IsValidDayOfWeek(d.DayOfWeek) {
				errs = append(errs, validator.ValidationError{
					Field:   "days",
					Message: "day_of_week must be between 0 and 6",
				})
				break
			}
			if seen[d.DayOfWeek] {
				errs = append(errs, validator.ValidationError{
					Field:   "days",
					Message: "duplicate day_of_week entry",
				})
				break
			}
			seen[d.DayOfWeek] = true
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkDayResponse struct {
	DayOfWeek int  `json:"day_of_week"`
	IsWorkDay bool `json:"is_work_day"`
}

type WorkCalendarResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	IsDefault bool              `json:"is_default"`
	Days      []WorkDayResponse `json:"days"`
}
