package holiday

import "context"

// HolidayService maintains the holiday records the engine resolves against.
// Reads and writes are scoped by the caller's company claim.
type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Get(ctx context.Context, id string) (HolidayResponse, error)
	List(ctx context.Context) ([]HolidayResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}
