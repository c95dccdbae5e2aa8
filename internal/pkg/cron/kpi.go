package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/company"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
)

type KPIJobs struct {
	engineService engine.Service
	companyRepo   company.CompanyRepository
	employeeRepo  employee.EmployeeRepository
}

func NewKPIJobs(
	engineService engine.Service,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
) *KPIJobs {
	return &KPIJobs{
		engineService: engineService,
		companyRepo:   companyRepo,
		employeeRepo:  employeeRepo,
	}
}

func (j *KPIJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("classify_previous_day", 1*time.Hour, j.ClassifyPreviousDay)
	scheduler.AddJob("warm_monthly_kpis", 1*time.Hour, j.WarmMonthlyKPIs)
}

// ClassifyPreviousDay runs the company-wide day aggregation for yesterday,
// surfacing incidents while the data is fresh.
func (j *KPIJobs) ClassifyPreviousDay(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting previous-day classification job")

	companies, err := j.companyRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	for _, comp := range companies {
		summary, err := j.engineService.AggregateCompanyDay(ctx, comp.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to classify previous day",
				"company_id", comp.ID,
				"date", yesterday,
				"error", err)
			continue
		}

		incidents := 0
		for _, result := range summary.PerEmployee {
			if result.HasIncident {
				incidents++
			}
		}
		slog.Info("Cron: Previous day classified",
			"company_id", comp.ID,
			"date", yesterday,
			"active", summary.Active,
			"scheduled", summary.Scheduled,
			"incidents", incidents,
			"failed", len(summary.Failed))
	}
	return nil
}

// WarmMonthlyKPIs pre-computes the current month's KPIs for every active
// employee so interactive reads hit the cache.
func (j *KPIJobs) WarmMonthlyKPIs(ctx context.Context) error {
	// Only run in the early morning (01:00-01:59 UTC)
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	slog.Info("Cron: Starting monthly KPI warm-up job")

	companies, err := j.companyRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	month := time.Now().UTC().Format("2006-01")
	for _, comp := range companies {
		employees, err := j.employeeRepo.GetActiveByCompanyID(ctx, comp.ID)
		if err != nil {
			slog.Error("Cron: Failed to list active employees",
				"company_id", comp.ID,
				"error", err)
			continue
		}

		for _, emp := range employees {
			if _, err := j.engineService.AggregateMonth(ctx, emp.ID, comp.ID, month); err != nil {
				slog.Error("Cron: Failed to warm monthly KPIs",
					"company_id", comp.ID,
					"employee_id", emp.ID,
					"month", month,
					"error", err)
			}
		}
	}
	return nil
}
