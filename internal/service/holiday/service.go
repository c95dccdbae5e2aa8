package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		holidayRepo: holidayRepo,
	}
}

func mapHolidayToResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		IsRecurring: h.IsRecurring,
		Description: h.Description,
	}
}

func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	now := time.Now()
	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        req.Name,
		Date:        date,
		IsRecurring: req.IsRecurring,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return mapHolidayToResponse(created), nil
}

func (s *HolidayServiceImpl) Get(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.holidayRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return mapHolidayToResponse(h), nil
}

func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidayRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	existing, err := s.holidayRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Date != nil {
		date, _ := validator.IsValidDate(*req.Date)
		existing.Date = date
	}
	if req.IsRecurring != nil {
		existing.IsRecurring = *req.IsRecurring
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	existing.UpdatedAt = time.Now()

	if err := s.holidayRepo.Update(ctx, existing); err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to update holiday: %w", err)
	}

	return mapHolidayToResponse(existing), nil
}

func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.holidayRepo.Delete(ctx, id, companyID)
}
