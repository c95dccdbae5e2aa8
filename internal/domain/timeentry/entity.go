package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is a recorded clock fact. Entries are created by time-tracking
// input and are read-only to the resolution engine. At most one canonical
// entry per employee per date is expected; duplicates are tolerated and
// surfaced as incidents.
type TimeEntry struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Date            time.Time
	ClockIn         *time.Time // absolute UTC timestamp
	ClockOut        *time.Time // absolute UTC timestamp
	TotalHours      *decimal.Decimal
	BreakMinutes    int
	OvertimeMinutes int
	Source          Source
	Status          Status
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Source string

const (
	SourceManual    Source = "MANUAL"
	SourceBiometric Source = "BIOMETRIC"
	SourceImport    Source = "IMPORT"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCorrected Status = "CORRECTED"
)
