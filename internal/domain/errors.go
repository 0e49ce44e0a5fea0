package domain

import "errors"

// Input-format errors. A record carrying one of these is rejected.
var (
	ErrInvalidLocalTime     = errors.New("invalid local time")
	ErrNegativeQuantity     = errors.New("negative quantity")
	ErrMinTargetAboveMax    = errors.New("min target capacity exceeds max capacity")
	ErrCapacityAboveMax     = errors.New("current capacity exceeds max capacity")
	ErrEmptyDemandID        = errors.New("demand id is empty")
	ErrDuplicateDemandID    = errors.New("duplicate demand id")
	ErrSampleLengthMismatch = errors.New("local time and power output sample counts differ")
	ErrUnorderedCurve       = errors.New("supply curve is not in ascending time order")
)

// Invariant violations. These indicate an allocation bug and abort the run.
var (
	ErrSupplyOversold   = errors.New("fulfilled demand exceeds power output")
	ErrCapacityExceeded = errors.New("demand capacity outside [0, max]")
)

var (
	ErrPlantNotCached    = errors.New("plant telemetry not cached")
	ErrTelemetryNotFound = errors.New("plant telemetry not found")
)
