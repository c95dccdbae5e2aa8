package employee

import "time"

type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	Status       Status
	PositionID   *string
	DepartmentID *string
	DateJoined   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

var StatusValues = []string{
	string(StatusActive),
	string(StatusInactive),
	string(StatusSuspended),
}

// IsSchedulable reports whether the employee participates in work-day
// resolution. Non-active employees are excluded from all resolution.
func (e Employee) IsSchedulable() bool {
	return e.Status == StatusActive
}
