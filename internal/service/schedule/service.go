package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type ScheduleServiceImpl struct {
	shiftRepo    schedule.WorkShiftRepository
	weeklyRepo   schedule.WeeklyScheduleRepository
	specialRepo  schedule.SpecialDayRepository
	employeeRepo employee.EmployeeRepository
}

func NewScheduleService(
	shiftRepo schedule.WorkShiftRepository,
	weeklyRepo schedule.WeeklyScheduleRepository,
	specialRepo schedule.SpecialDayRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		shiftRepo:    shiftRepo,
		weeklyRepo:   weeklyRepo,
		specialRepo:  specialRepo,
		employeeRepo: employeeRepo,
	}
}

func mapShiftToResponse(shift schedule.WorkShift) schedule.WorkShiftResponse {
	return schedule.WorkShiftResponse{
		ID:               shift.ID,
		Name:             shift.Name,
		StartMinute:      shift.StartMinute,
		EndMinute:        shift.EndMinute,
		BreakStartMinute: shift.BreakStartMinute,
		BreakEndMinute:   shift.BreakEndMinute,
		IsNightShift:     shift.IsNightShift,
	}
}

func (s *ScheduleServiceImpl) CreateWorkShift(ctx context.Context, req schedule.CreateWorkShiftRequest) (schedule.WorkShiftResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return schedule.WorkShiftResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return schedule.WorkShiftResponse{}, err
	}

	now := time.Now()
	created, err := s.shiftRepo.Create(ctx, schedule.WorkShift{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Name:             req.Name,
		StartMinute:      req.StartMinute,
		EndMinute:        req.EndMinute,
		BreakStartMinute: req.BreakStartMinute,
		BreakEndMinute:   req.BreakEndMinute,
		IsNightShift:     req.IsNightShift,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return schedule.WorkShiftResponse{}, fmt.Errorf("failed to create work shift: %w", err)
	}

	return mapShiftToResponse(created), nil
}

func (s *ScheduleServiceImpl) ListWorkShifts(ctx context.Context) ([]schedule.WorkShiftResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}

	responses := make([]schedule.WorkShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		responses = append(responses, mapShiftToResponse(shift))
	}
	return responses, nil
}

func (s *ScheduleServiceImpl) DeleteWorkShift(ctx context.Context, id string) error {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.shiftRepo.Delete(ctx, id, companyID)
}

func (s *ScheduleServiceImpl) UpsertWeeklySchedule(ctx context.Context, req schedule.UpsertWeeklyScheduleRequest) (schedule.WeeklyScheduleResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	// The referenced shift must belong to the same company.
	if req.WorkShiftID != nil {
		if _, err := s.shiftRepo.GetByID(ctx, *req.WorkShiftID, companyID); err != nil {
			return schedule.WeeklyScheduleResponse{}, err
		}
	}

	now := time.Now()
	row, err := s.weeklyRepo.Upsert(ctx, schedule.WeeklySchedule{
		ID:          uuid.New().String(),
		EmployeeID:  req.EmployeeID,
		CompanyID:   companyID,
		DayOfWeek:   req.DayOfWeek,
		WorkShiftID: req.WorkShiftID,
		IsWorkDay:   req.IsWorkDay,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, fmt.Errorf("failed to upsert weekly schedule: %w", err)
	}

	return schedule.WeeklyScheduleResponse{
		EmployeeID:  row.EmployeeID,
		DayOfWeek:   row.DayOfWeek,
		WorkShiftID: row.WorkShiftID,
		IsWorkDay:   row.IsWorkDay,
	}, nil
}

func (s *ScheduleServiceImpl) ListWeeklySchedule(ctx context.Context, employeeID string) ([]schedule.WeeklyScheduleResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.weeklyRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly schedule: %w", err)
	}

	responses := make([]schedule.WeeklyScheduleResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, schedule.WeeklyScheduleResponse{
			EmployeeID:  row.EmployeeID,
			DayOfWeek:   row.DayOfWeek,
			WorkShiftID: row.WorkShiftID,
			IsWorkDay:   row.IsWorkDay,
		})
	}
	return responses, nil
}

func (s *ScheduleServiceImpl) CreateSpecialDay(ctx context.Context, req schedule.CreateSpecialDayRequest) (schedule.SpecialDayResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return schedule.SpecialDayResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return schedule.SpecialDayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return schedule.SpecialDayResponse{}, err
	}

	now := time.Now()
	created, err := s.specialRepo.Create(ctx, schedule.SpecialDayAssignment{
		ID:          uuid.New().String(),
		EmployeeID:  req.EmployeeID,
		CompanyID:   companyID,
		Date:        date,
		Type:        schedule.SpecialDayType(req.Type),
		IsMandatory: req.IsMandatory,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return schedule.SpecialDayResponse{}, fmt.Errorf("failed to create special day assignment: %w", err)
	}

	return schedule.SpecialDayResponse{
		ID:          created.ID,
		EmployeeID:  created.EmployeeID,
		Date:        created.Date.Format("2006-01-02"),
		Type:        string(created.Type),
		IsMandatory: created.IsMandatory,
		Notes:       created.Notes,
	}, nil
}

func (s *ScheduleServiceImpl) DeleteSpecialDay(ctx context.Context, id string) error {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.specialRepo.Delete(ctx, id, companyID)
}
