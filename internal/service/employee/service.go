package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
	"github.com/Dev4EM/emp-sub000/internal/repository/postgresql"
)

type employeeServiceImpl struct {
	db             *database.DB
	employeeRepo   employee.EmployeeRepository
	userRepo       user.UserRepository
	departmentRepo department.DepartmentRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	departmentRepo department.DepartmentRepository,
) employee.EmployeeService {
	return &employeeServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             emp.ID,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		EmployeeCode:   emp.EmployeeCode,
		FullName:       emp.FullName,
		Email:          emp.Email,
		PhoneNumber:    emp.PhoneNumber,
		ShiftLabel:     emp.ShiftLabel,
		JoinDate:       emp.JoinDate.Format("2006-01-02"),
	}
	if emp.BaseSalary != nil {
		salary := emp.BaseSalary.StringFixed(2)
		resp.BaseSalary = &salary
	}
	return resp
}

// Create inserts the employee record and its login account atomically.
func (s *employeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("invalid join_date: %w", err)
	}

	var baseSalary *decimal.Decimal
	if req.BaseSalary != nil {
		salary, err := decimal.NewFromString(*req.BaseSalary)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("invalid base_salary: %w", err)
		}
		baseSalary = &salary
	}

	password := req.EmployeeCode
	if req.InitialPassword != nil {
		password = *req.InitialPassword
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		account, err := s.userRepo.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			Role:         user.RoleEmployee,
		})
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:       &account.ID,
			DepartmentID: req.DepartmentID,
			EmployeeCode: req.EmployeeCode,
			FullName:     req.FullName,
			Email:        req.Email,
			PhoneNumber:  req.PhoneNumber,
			ShiftLabel:   req.ShiftLabel,
			JoinDate:     joinDate,
			BaseSalary:   baseSalary,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

func (s *employeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// GetMe resolves the employee record behind the authenticated user.
func (s *employeeServiceImpl) GetMe(ctx context.Context) (employee.EmployeeResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return employee.EmployeeResponse{}, user.ErrUserNotFound
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

func (s *employeeServiceImpl) List(ctx context.Context, filter employee.Filter) (employee.ListEmployeesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

func (s *employeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		emp.DepartmentID = *req.DepartmentID
	}
	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.ShiftLabel != nil {
		emp.ShiftLabel = req.ShiftLabel
	}
	if req.BaseSalary != nil {
		salary, err := decimal.NewFromString(*req.BaseSalary)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("invalid base_salary: %w", err)
		}
		emp.BaseSalary = &salary
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(updated), nil
}

func (s *employeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}
