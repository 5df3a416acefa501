package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("a department with this name already exists")
)
