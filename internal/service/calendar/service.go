package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

type WorkCalendarServiceImpl struct {
	calendarRepo calendar.WorkCalendarRepository
}

func NewWorkCalendarService(calendarRepo calendar.WorkCalendarRepository) calendar.WorkCalendarService {
	return &WorkCalendarServiceImpl{
		calendarRepo: calendarRepo,
	}
}

func mapCalendarToResponse(cal calendar.WorkCalendar) calendar.WorkCalendarResponse {
	days := make([]calendar.WorkDayResponse, 0, len(cal.Days))
	for _, d := range cal.Days {
		days = append(days, calendar.WorkDayResponse{
			DayOfWeek: d.DayOfWeek,
			IsWorkDay: d.IsWorkDay,
		})
	}
	return calendar.WorkCalendarResponse{
		ID:        cal.ID,
		Name:      cal.Name,
		IsDefault: cal.IsDefault,
		Days:      days,
	}
}

func (s *WorkCalendarServiceImpl) Create(ctx context.Context, req calendar.CreateWorkCalendarRequest) (calendar.WorkCalendarResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return calendar.WorkCalendarResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return calendar.WorkCalendarResponse{}, err
	}

	now := time.Now()
	cal := calendar.WorkCalendar{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, d := range req.Days {
		cal.Days = append(cal.Days, calendar.WorkDay{
			ID:             uuid.New().String(),
			WorkCalendarID: cal.ID,
			DayOfWeek:      d.DayOfWeek,
			IsWorkDay:      d.IsWorkDay,
		})
	}

	created, err := s.calendarRepo.Create(ctx, cal)
	if err != nil {
		return calendar.WorkCalendarResponse{}, fmt.Errorf("failed to create work calendar: %w", err)
	}

	// The default flag is flipped after the insert so the clearing of other
	// calendars stays in one place.
	if req.IsDefault {
		if err := s.calendarRepo.SetDefault(ctx, created.ID, companyID); err != nil {
			return calendar.WorkCalendarResponse{}, fmt.Errorf("failed to set default work calendar: %w", err)
		}
		created.IsDefault = true
	}

	return mapCalendarToResponse(created), nil
}

func (s *WorkCalendarServiceImpl) Get(ctx context.Context, id string) (calendar.WorkCalendarResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return calendar.WorkCalendarResponse{}, err
	}

	cal, err := s.calendarRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return calendar.WorkCalendarResponse{}, err
	}

	return mapCalendarToResponse(cal), nil
}

func (s *WorkCalendarServiceImpl) List(ctx context.Context) ([]calendar.WorkCalendarResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	calendars, err := s.calendarRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work calendars: %w", err)
	}

	responses := make([]calendar.WorkCalendarResponse, 0, len(calendars))
	for _, cal := range calendars {
		responses = append(responses, mapCalendarToResponse(cal))
	}
	return responses, nil
}

func (s *WorkCalendarServiceImpl) SetDefault(ctx context.Context, id string) error {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.calendarRepo.SetDefault(ctx, id, companyID)
}

func (s *WorkCalendarServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.calendarRepo.Delete(ctx, id, companyID)
}
