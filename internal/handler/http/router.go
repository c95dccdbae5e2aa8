package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	jwtService jwt.Service,
	engineHandler EngineHandler,
	holidayHandler HolidayHandler,
	calendarHandler WorkCalendarHandler,
	scheduleHandler ScheduleHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/engine", func(r chi.Router) {
				r.Get("/expected-shift", engineHandler.GetExpectedShift)
				r.Get("/day-result", engineHandler.GetDayResult)
				r.Get("/monthly-kpis", engineHandler.GetMonthlyKPIs)
				r.Get("/company-day", engineHandler.GetCompanyDay)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.Post("/", holidayHandler.Create)
				r.Route("/{holidayID}", func(r chi.Router) {
					r.Get("/", holidayHandler.Get)
					r.Put("/", holidayHandler.Update)
					r.Delete("/", holidayHandler.Delete)
				})
			})

			r.Route("/work-calendars", func(r chi.Router) {
				r.Get("/", calendarHandler.List)
				r.Post("/", calendarHandler.Create)
				r.Route("/{calendarID}", func(r chi.Router) {
					r.Get("/", calendarHandler.Get)
					r.Put("/default", calendarHandler.SetDefault)
					r.Delete("/", calendarHandler.Delete)
				})
			})

			r.Route("/work-shifts", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListWorkShifts)
				r.Post("/", scheduleHandler.CreateWorkShift)
				r.Delete("/{shiftID}", scheduleHandler.DeleteWorkShift)
			})

			r.Route("/employees/{employeeID}/weekly-schedule", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListWeeklySchedule)
				r.Put("/", scheduleHandler.UpsertWeeklySchedule)
			})

			r.Route("/special-days", func(r chi.Router) {
				r.Post("/", scheduleHandler.CreateSpecialDay)
				r.Delete("/{specialDayID}", scheduleHandler.DeleteSpecialDay)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
