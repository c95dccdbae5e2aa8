package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	// Work Shift
	CreateWorkShift(w http.ResponseWriter, r *http.Request)
	ListWorkShifts(w http.ResponseWriter, r *http.Request)
	DeleteWorkShift(w http.ResponseWriter, r *http.Request)

	// Weekly Schedule
	UpsertWeeklySchedule(w http.ResponseWriter, r *http.Request)
	ListWeeklySchedule(w http.ResponseWriter, r *http.Request)

	// Special Day Assignment
	CreateSpecialDay(w http.ResponseWriter, r *http.Request)
	DeleteSpecialDay(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ==================== WORK SHIFT HANDLERS ====================

// CreateWorkShift implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateWorkShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateWorkShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.scheduleService.CreateWorkShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work shift created successfully", result)
}

// ListWorkShifts implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListWorkShifts(w http.ResponseWriter, r *http.Request) {
	results, err := h.scheduleService.ListWorkShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// DeleteWorkShift implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteWorkShift(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteWorkShift(r.Context(), chi.URLParam(r, "shiftID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work shift deleted successfully", nil)
}

// ==================== WEEKLY SCHEDULE HANDLERS ====================

// UpsertWeeklySchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) UpsertWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req schedule.UpsertWeeklyScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.scheduleService.UpsertWeeklySchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly schedule saved", result)
}

// ListWeeklySchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	results, err := h.scheduleService.ListWeeklySchedule(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ==================== SPECIAL DAY HANDLERS ====================

// CreateSpecialDay implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateSpecialDay(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateSpecialDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.scheduleService.CreateSpecialDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Special day assignment created successfully", result)
}

// DeleteSpecialDay implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteSpecialDay(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteSpecialDay(r.Context(), chi.URLParam(r, "specialDayID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Special day assignment deleted successfully", nil)
}
