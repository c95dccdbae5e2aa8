package schedule

import "context"

// ScheduleService maintains shift templates, recurring weekly schedules and
// date-specific special day assignments.
type ScheduleService interface {
	CreateWorkShift(ctx context.Context, req CreateWorkShiftRequest) (WorkShiftResponse, error)
	ListWorkShifts(ctx context.Context) ([]WorkShiftResponse, error)
	DeleteWorkShift(ctx context.Context, id string) error

	UpsertWeeklySchedule(ctx context.Context, req UpsertWeeklyScheduleRequest) (WeeklyScheduleResponse, error)
	ListWeeklySchedule(ctx context.Context, employeeID string) ([]WeeklyScheduleResponse, error)

	CreateSpecialDay(ctx context.Context, req CreateSpecialDayRequest) (SpecialDayResponse, error)
	DeleteSpecialDay(ctx context.Context, id string) error
}
