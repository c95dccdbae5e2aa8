package company

import "time"

type Company struct {
	ID        string
	Name      string
	Timezone  string // IANA name; empty means UTC
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
