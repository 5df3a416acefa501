package batch

import "errors"

var (
	ErrBatchNotFound = errors.New("batch not found")
	ErrBatchExists   = errors.New("a batch with this name already exists in the program")
)
