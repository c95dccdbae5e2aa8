package engine

import "context"

// Service is the Work-Day & Attendance Resolution Engine. All resolution is
// read-only and pure given its inputs; lookups are scoped by company for
// tenant isolation, and date strings are calendar dates interpreted in the
// company's configured timezone (UTC when unset).
type Service interface {
	// ResolveExpectedShift decides whether the employee was expected to work
	// the given date and under which shift.
	ResolveExpectedShift(ctx context.Context, employeeID, companyID, date string) (ExpectedShift, error)

	// ClassifyDay resolves the expectation and compares it against recorded
	// clock events to produce a per-day verdict.
	ClassifyDay(ctx context.Context, employeeID, companyID, date string) (DayResult, error)

	// AggregateMonth classifies every date of a month ("YYYY-MM") and
	// reduces the results into KPI totals.
	AggregateMonth(ctx context.Context, employeeID, companyID, month string) (MonthlyKPIs, error)

	// AggregateCompanyDay classifies one date for every ACTIVE employee of a
	// company. Per-employee failures are collected, not propagated.
	AggregateCompanyDay(ctx context.Context, companyID, date string) (CompanyDaySummary, error)
}
