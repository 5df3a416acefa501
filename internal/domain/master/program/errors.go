package program

import "errors"

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrProgramExists   = errors.New("a program with this name already exists")
)
