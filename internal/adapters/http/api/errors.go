package api

import "errors"

// Sentinel kinds for API request validation errors.
var (
	ErrMissingTaskID = errors.New("missing task id")
	ErrInvalidLimit  = errors.New("limit must be a positive integer")
	ErrInvalidWeight = errors.New("weight must be a non-negative number")
	ErrInvalidDate   = errors.New("date must be RFC3339")
)
