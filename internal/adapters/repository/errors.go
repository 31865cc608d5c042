package repository

import "errors"

// Sentinel kinds for fixture loading errors.
var (
	ErrLoadFixtures   = errors.New("load fixtures failed")
	ErrInvalidFixture = errors.New("invalid fixture")
)
