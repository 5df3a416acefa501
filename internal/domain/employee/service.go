package employee

import (
	"context"
)

// EmployeeService defines admin CRUD over employee records.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	GetMe(ctx context.Context) (EmployeeResponse, error)
	List(ctx context.Context, filter Filter) (ListEmployeesResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}
