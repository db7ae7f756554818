// Package boostbench structured error types for better error handling
package boostbench

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors
	ErrTypeInvalidArg ErrorType = iota
	// Data conversion errors
	ErrTypeConversion
	// Training errors
	ErrTypeTraining
	// Device errors
	ErrTypeDevice
	// Not implemented errors
	ErrTypeNotImplemented
)

// BoostError represents a structured error with context
type BoostError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *BoostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("boostbench %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("boostbench %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *BoostError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeConversion:
		return "Conversion"
	case ErrTypeTraining:
		return "Training"
	case ErrTypeDevice:
		return "Device"
	case ErrTypeNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &BoostError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewConversionError creates a data conversion error
func NewConversionError(op string, message string, err error) error {
	return &BoostError{
		Type:    ErrTypeConversion,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewTrainingError creates a training error
func NewTrainingError(op string, message string, err error) error {
	return &BoostError{
		Type:    ErrTypeTraining,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewDeviceError creates a device error
func NewDeviceError(op string, message string, err error) error {
	return &BoostError{
		Type:    ErrTypeDevice,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewNotImplementedError creates a not implemented error
func NewNotImplementedError(op string, message string) error {
	return &BoostError{
		Type:    ErrTypeNotImplemented,
		Op:      op,
		Message: message,
	}
}

// Common pre-defined errors

var (
	// ErrInvalidRows indicates a non-positive row count
	ErrInvalidRows = NewInvalidArgError("Simulate", "rows must be positive")

	// ErrInvalidColumns indicates a non-positive feature column count
	ErrInvalidColumns = NewInvalidArgError("Simulate", "columns must be positive")

	// ErrInvalidCategories indicates fewer than two label categories
	ErrInvalidCategories = NewInvalidArgError("Simulate", "categories must be at least 2")

	// ErrInvalidFraction indicates a train fraction outside (0, 1)
	ErrInvalidFraction = NewInvalidArgError("SplitTable", "fraction must be in (0, 1)")

	// ErrNoDevice indicates no compute device of the requested kind
	ErrNoDevice = NewDeviceError("DeviceByKind", "no compute device available", nil)
)

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	if e, ok := err.(*BoostError); ok {
		return e.Type == ErrTypeInvalidArg
	}
	return false
}

// IsConversionError checks if an error is a data conversion error
func IsConversionError(err error) bool {
	if e, ok := err.(*BoostError); ok {
		return e.Type == ErrTypeConversion
	}
	return false
}

// IsTrainingError checks if an error is a training error
func IsTrainingError(err error) bool {
	if e, ok := err.(*BoostError); ok {
		return e.Type == ErrTypeTraining
	}
	return false
}

// IsDeviceError checks if an error is a device error
func IsDeviceError(err error) bool {
	if e, ok := err.(*BoostError); ok {
		return e.Type == ErrTypeDevice
	}
	return false
}
