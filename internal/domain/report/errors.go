package report

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmptyReport       = errors.New("no employees match the report filter")
)
