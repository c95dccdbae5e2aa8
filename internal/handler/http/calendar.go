package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkCalendarHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	SetDefault(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workCalendarHandlerImpl struct {
	calendarService calendar.WorkCalendarService
}

func NewWorkCalendarHandler(calendarService calendar.WorkCalendarService) WorkCalendarHandler {
	return &workCalendarHandlerImpl{
		calendarService: calendarService,
	}
}

// Create implements WorkCalendarHandler.
func (h *workCalendarHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateWorkCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.calendarService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work calendar created successfully", result)
}

// Get implements WorkCalendarHandler.
func (h *workCalendarHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.calendarService.Get(r.Context(), chi.URLParam(r, "calendarID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorkCalendarHandler.
func (h *workCalendarHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.calendarService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// SetDefault implements WorkCalendarHandler.
func (h *workCalendarHandlerImpl) SetDefault(w http.ResponseWriter, r *http.Request) {
	if err := h.calendarService.SetDefault(r.Context(), chi.URLParam(r, "calendarID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Default work calendar updated", nil)
}

// Delete implements WorkCalendarHandler.
func (h *workCalendarHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calendarService.Delete(r.Context(), chi.URLParam(r, "calendarID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work calendar deleted successfully", nil)
}
