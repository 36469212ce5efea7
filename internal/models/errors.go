package models

import "errors"

var (
	ErrRateLimited       = errors.New("report rate limited")
	ErrZoneNotFound      = errors.New("zone not found")
	ErrEmptyRegistry     = errors.New("zone registry is empty")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidCount      = errors.New("incident count must be at least 1")
	ErrDuplicateZone     = errors.New("zone already exists")
	ErrAlreadySeeded     = errors.New("registry already seeded")
	ErrInvalidRadius     = errors.New("radius must be positive")
)
