package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur while scoring responses or
// assembling partitions.
var (
	// ErrInvalidWeight indicates that a criterion set carries no usable
	// scoring signal (all weights zero, or a negative weight).
	ErrInvalidWeight = errors.New("invalid criterion weight")

	// ErrInsufficientRoster indicates that a grouper received a degenerate
	// roster or target group size.
	ErrInsufficientRoster = errors.New("insufficient roster")

	// ErrInvalidSchedule indicates a malformed annealing schedule.
	ErrInvalidSchedule = errors.New("invalid annealing schedule")

	// ErrInvalidAnswer indicates that an answer does not belong to its
	// question's value domain.
	ErrInvalidAnswer = errors.New("invalid answer for question")

	// ErrUnknownQuestion indicates that a requested question ID is not
	// part of the survey.
	ErrUnknownQuestion = errors.New("question not found in survey")

	// ErrDuplicateStudent indicates that two roster entries share an ID.
	ErrDuplicateStudent = errors.New("duplicate student id")

	// ErrInvalidPartition indicates that a partition does not cover the
	// roster exactly once.
	ErrInvalidPartition = errors.New("invalid partition")
)

// PartitionError describes a specific coverage violation discovered while
// validating a partition against its roster.
type PartitionError struct {
	// StudentID is the student involved in the violation, if any.
	StudentID string

	// Reason describes the violation (duplicated, omitted, unknown).
	Reason string

	// Err is the underlying sentinel, always ErrInvalidPartition.
	Err error
}

// Error implements the error interface for PartitionError.
func (e *PartitionError) Error() string {
	if e.StudentID == "" {
		return fmt.Sprintf("partition error: %s", e.Reason)
	}
	return fmt.Sprintf("partition error: student=%s, %s", e.StudentID, e.Reason)
}

// Unwrap returns the underlying sentinel, supporting errors.Is checks.
func (e *PartitionError) Unwrap() error { return e.Err }

// NewPartitionError creates a PartitionError for the given student and reason.
func NewPartitionError(studentID, reason string) *PartitionError {
	return &PartitionError{
		StudentID: studentID,
		Reason:    reason,
		Err:       ErrInvalidPartition,
	}
}

// ValidationError represents an error that occurred during validation of
// loaded rosters, surveys, or run configurations.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
