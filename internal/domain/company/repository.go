package company

import "context"

type CompanyRepository interface {
	// GetByID retrieves a company by its identifier
	GetByID(ctx context.Context, id string) (Company, error)

	// ListAll retrieves every active company; used by scheduled jobs
	ListAll(ctx context.Context) ([]Company, error)
}
