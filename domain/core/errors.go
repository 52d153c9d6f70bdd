package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data loading errors (fatal for a chapter run)
	ErrFetchFailed   = errors.New("dataset fetch failed")
	ErrMalformedRow  = errors.New("malformed dataset row")
	ErrMissingColumn = errors.New("required column missing")
	ErrEmptyDataset  = errors.New("dataset contains no usable trials")

	// Model specification errors
	ErrUnknownParam    = errors.New("unknown model parameter")
	ErrUnknownFamily   = errors.New("unknown distribution family")
	ErrInvalidPrior    = errors.New("invalid prior specification")
	ErrParamCountWrong = errors.New("parameter count does not match family")

	// Sampling errors
	ErrNoDraws      = errors.New("sampler produced no draws")
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewFetchError(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrFetchFailed, source, err)
}

func NewRowError(line int, reason string) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedRow, line, reason)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewUnknownParamError(name ParamName) error {
	return fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

// Error checking helpers
func IsDataError(err error) bool {
	return errors.Is(err, ErrFetchFailed) ||
		errors.Is(err, ErrMalformedRow) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrEmptyDataset)
}

func IsModelError(err error) bool {
	return errors.Is(err, ErrUnknownParam) ||
		errors.Is(err, ErrUnknownFamily) ||
		errors.Is(err, ErrInvalidPrior) ||
		errors.Is(err, ErrParamCountWrong)
}
