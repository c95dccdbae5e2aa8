package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	appHTTP "github.com/cmlabs-hris/attendance-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/attendance-engine-go/internal/service/calendar"
	engineService "github.com/cmlabs-hris/attendance-engine-go/internal/service/engine"
	holidayService "github.com/cmlabs-hris/attendance-engine-go/internal/service/holiday"
	scheduleService "github.com/cmlabs-hris/attendance-engine-go/internal/service/schedule"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	calendarRepo := postgresql.NewWorkCalendarRepository(db)
	shiftRepo := postgresql.NewWorkShiftRepository(db)
	weeklyRepo := postgresql.NewWeeklyScheduleRepository(db)
	specialRepo := postgresql.NewSpecialDayRepository(db)
	entryRepo := postgresql.NewTimeEntryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	kpiCache := cache.NewKPICache(
		cfg.RedisAddr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Redis.KPITTLMinutes)*time.Minute,
	)

	policy := engine.Policy{
		GracePeriod:              time.Duration(cfg.Engine.GracePeriodMinutes) * time.Minute,
		HoursTolerance:           time.Duration(cfg.Engine.HoursToleranceMinutes) * time.Minute,
		HolidayOverridesSchedule: cfg.Engine.HolidayOverridesSchedule,
		DefaultTimezone:          cfg.Engine.DefaultTimezone,
	}

	engineSvc := engineService.NewEngineService(
		companyRepo,
		employeeRepo,
		holidayRepo,
		calendarRepo,
		shiftRepo,
		weeklyRepo,
		specialRepo,
		entryRepo,
		policy,
		kpiCache,
		logger,
	)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	calendarSvc := calendarService.NewWorkCalendarService(calendarRepo)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, weeklyRepo, specialRepo, employeeRepo)

	engineHandler := appHTTP.NewEngineHandler(engineSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	calendarHandler := appHTTP.NewWorkCalendarHandler(calendarSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)

	scheduler := cron.NewScheduler()
	cron.NewKPIJobs(engineSvc, companyRepo, employeeRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		logger,
		jwtService,
		engineHandler,
		holidayHandler,
		calendarHandler,
		scheduleHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
