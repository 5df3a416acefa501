package employee

import (
	"context"
)

// EmployeeRepository defines data access for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, emp Employee) error
	// Delete soft-deletes the record.
	Delete(ctx context.Context, id string) error
}
