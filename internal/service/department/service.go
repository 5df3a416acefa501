package department

import (
	"context"

	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

type departmentServiceImpl struct {
	repo department.DepartmentRepository
}

// NewDepartmentService creates the department service.
func NewDepartmentService(repo department.DepartmentRepository) department.DepartmentService {
	return &departmentServiceImpl{repo: repo}
}

// Create implements department.DepartmentService.
func (s *departmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	weekOffDays, err := parseWeekdays(req.WeekOffDays)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.repo.Create(ctx, department.Department{
		Name:        req.Name,
		WeekOffDays: weekOffDays,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return toResponse(created), nil
}

// GetByID implements department.DepartmentService.
func (s *departmentServiceImpl) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return toResponse(dept), nil
}

// List implements department.DepartmentService.
func (s *departmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		responses = append(responses, toResponse(dept))
	}
	return responses, nil
}

// Update implements department.DepartmentService.
func (s *departmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	dept, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.WeekOffDays != nil {
		weekOffDays, err := parseWeekdays(*req.WeekOffDays)
		if err != nil {
			return department.DepartmentResponse{}, err
		}
		dept.WeekOffDays = weekOffDays
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return department.DepartmentResponse{}, err
	}
	return toResponse(dept), nil
}

// Delete implements department.DepartmentService.
func (s *departmentServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func parseWeekdays(names []string) ([]schedule.Weekday, error) {
	days := make([]schedule.Weekday, 0, len(names))
	for _, name := range names {
		day, err := schedule.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

func toResponse(dept department.Department) department.DepartmentResponse {
	names := make([]string, 0, len(dept.WeekOffDays))
	for _, day := range dept.WeekOffDays {
		names = append(names, day.String())
	}
	return department.DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		WeekOffDays: names,
	}
}
