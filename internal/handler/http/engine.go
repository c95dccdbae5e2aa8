package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type EngineHandler interface {
	GetExpectedShift(w http.ResponseWriter, r *http.Request)
	GetDayResult(w http.ResponseWriter, r *http.Request)
	GetMonthlyKPIs(w http.ResponseWriter, r *http.Request)
	GetCompanyDay(w http.ResponseWriter, r *http.Request)
}

type engineHandlerImpl struct {
	engineService engine.Service
}

func NewEngineHandler(engineService engine.Service) EngineHandler {
	return &engineHandlerImpl{
		engineService: engineService,
	}
}

// monthlyKPIsPayload carries the stored counts plus the derived rates, which
// are computed, never persisted.
type monthlyKPIsPayload struct {
	engine.MonthlyKPIs
	AttendanceRate     float64         `json:"attendance_rate"`
	AverageHoursPerDay decimal.Decimal `json:"average_hours_per_day"`
}

// GetExpectedShift implements EngineHandler.
func (h *engineHandlerImpl) GetExpectedShift(w http.ResponseWriter, r *http.Request) {
	companyID, err := jwt.CompanyIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	date := r.URL.Query().Get("date")

	expected, err := h.engineService.ResolveExpectedShift(r.Context(), employeeID, companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, expected)
}

// GetDayResult implements EngineHandler.
func (h *engineHandlerImpl) GetDayResult(w http.ResponseWriter, r *http.Request) {
	companyID, err := jwt.CompanyIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	date := r.URL.Query().Get("date")

	result, err := h.engineService.ClassifyDay(r.Context(), employeeID, companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyKPIs implements EngineHandler.
func (h *engineHandlerImpl) GetMonthlyKPIs(w http.ResponseWriter, r *http.Request) {
	companyID, err := jwt.CompanyIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	month := r.URL.Query().Get("month")

	kpis, err := h.engineService.AggregateMonth(r.Context(), employeeID, companyID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, monthlyKPIsPayload{
		MonthlyKPIs:        kpis,
		AttendanceRate:     kpis.AttendanceRate(),
		AverageHoursPerDay: kpis.AverageHoursPerDay(),
	})
}

// GetCompanyDay implements EngineHandler.
func (h *engineHandlerImpl) GetCompanyDay(w http.ResponseWriter, r *http.Request) {
	companyID, err := jwt.CompanyIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date := r.URL.Query().Get("date")

	summary, err := h.engineService.AggregateCompanyDay(r.Context(), companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
