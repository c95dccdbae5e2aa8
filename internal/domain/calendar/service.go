package calendar

import "context"

// WorkCalendarService maintains the per-company default work calendars.
type WorkCalendarService interface {
	Create(ctx context.Context, req CreateWorkCalendarRequest) (WorkCalendarResponse, error)
	Get(ctx context.Context, id string) (WorkCalendarResponse, error)
	List(ctx context.Context) ([]WorkCalendarResponse, error)
	SetDefault(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
