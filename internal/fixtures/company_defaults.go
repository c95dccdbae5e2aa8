package fixtures

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/google/uuid"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func intPtr(i int) *int { return &i }

// ==========================================
// DEFAULT COMPANY DATA
// ==========================================

// DefaultWorkCalendar returns the standard Monday-to-Friday work week used to
// seed a new company.
func DefaultWorkCalendar(companyID string) calendar.WorkCalendar {
	now := time.Now()
	cal := calendar.WorkCalendar{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      "Standard Work Week",
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for dow := 0; dow < 7; dow++ {
		cal.Days = append(cal.Days, calendar.WorkDay{
			ID:             uuid.New().String(),
			WorkCalendarID: cal.ID,
			DayOfWeek:      dow,
			IsWorkDay:      dow >= 1 && dow <= 5,
		})
	}
	return cal
}

// StandardOfficeShift returns the default 09:00-17:00 shift with a one hour
// lunch break.
func StandardOfficeShift(companyID string) schedule.WorkShift {
	now := time.Now()
	return schedule.WorkShift{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Name:             "Standard Office Hours",
		StartMinute:      9 * 60,
		EndMinute:        17 * 60,
		BreakStartMinute: intPtr(12 * 60),
		BreakEndMinute:   intPtr(13 * 60),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NightShift returns the default 22:00-06:00 shift; the end anchor falls on
// the following calendar day.
func NightShift(companyID string) schedule.WorkShift {
	now := time.Now()
	return schedule.WorkShift{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         "Night Shift",
		StartMinute:  22 * 60,
		EndMinute:    6 * 60,
		IsNightShift: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
