package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptySample    = fmt.Errorf("%w: empty sample", ErrInvalidInput)
	ErrDegenerate     = fmt.Errorf("%w: degenerate sample", ErrInvalidInput)
	ErrMissingInput   = errors.New("missing required input")
	ErrLengthMismatch = errors.New("paired samples have different lengths")

	// Catalog errors
	ErrUnsupportedAnalysis = errors.New("unsupported analysis")
)

// Error constructors with context
func NewInvalidInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

func NewDegenerateError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerate, reason)
}

func NewMissingInputError(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, field)
}

func NewLengthMismatchError(lenX, lenY int) error {
	return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, lenX, lenY)
}

func NewUnsupportedAnalysisError(id string, reason string) error {
	return fmt.Errorf("%w %s: %s", ErrUnsupportedAnalysis, id, reason)
}

// Error checking helpers
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsMissingInputError(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

func IsLengthMismatchError(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}

func IsUnsupportedAnalysisError(err error) bool {
	return errors.Is(err, ErrUnsupportedAnalysis)
}
