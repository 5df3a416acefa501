package department

import (
	"context"
)

// DepartmentService defines the department business logic interface.
type DepartmentService interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}
