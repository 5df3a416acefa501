package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
)
