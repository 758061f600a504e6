package trafficfsm

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions of a table or engine
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// State was not found in the table
	ErrCodeStateNotFound
	// A row does not define a successor for every input code
	ErrCodeIncompleteTable
	// A successor does not reference a table row
	ErrCodeDanglingTransition
	// A row asserts a conflicting or unsafe lamp combination
	ErrCodeUnsafeOutput
	// A row holds for zero ticks
	ErrCodeInvalidHoldTime
	// Engine configuration is invalid
	ErrCodeInvalidConfiguration
	// Engine cursor is in invalid condition
	ErrCodeInvalidState
)

// TableError reports a defect in one row of a state table
type TableError struct {
	Code    ErrorCode
	State   StateID
	Input   InputVector
	HasCode bool
	Message string
}

func (e *TableError) Error() string {
	if e.HasCode {
		return fmt.Sprintf("table error [%s, input %d]: %s", e.State, uint8(e.Input), e.Message)
	}
	return fmt.Sprintf("table error [%s]: %s", e.State, e.Message)
}

// NewTableError creates a table error for a whole row
func NewTableError(code ErrorCode, state StateID, message string) *TableError {
	return &TableError{
		Code:    code,
		State:   state,
		Message: message,
	}
}

// NewDanglingTransitionError creates an error for a successor outside the table
func NewDanglingTransitionError(state StateID, input InputVector, next StateID) *TableError {
	return &TableError{
		Code:    ErrCodeDanglingTransition,
		State:   state,
		Input:   input,
		HasCode: true,
		Message: fmt.Sprintf("successor %d is not a table row", uint8(next)),
	}
}

// NewIncompleteTableError creates an error for a row with missing successors
func NewIncompleteTableError(state StateID, got int) *TableError {
	return &TableError{
		Code:    ErrCodeIncompleteTable,
		State:   state,
		Message: fmt.Sprintf("row defines %d successors, want %d", got, NumInputs),
	}
}

// StateError represents state lookup errors
type StateError struct {
	Code    ErrorCode
	Name    string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error [%s]: %s", e.Name, e.Message)
}

// NewStateNotFoundError creates a new state not found error
func NewStateNotFoundError(name string) *StateError {
	return &StateError{
		Code:    ErrCodeStateNotFound,
		Name:    name,
		Message: fmt.Sprintf("state '%s' not found", name),
	}
}

// ConfigurationError represents engine configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// IsTableError checks if an error is or wraps a TableError
func IsTableError(err error) bool {
	var target *TableError
	return errors.As(err, &target)
}

// IsStateError checks if an error is or wraps a StateError
func IsStateError(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code of the first known error in the chain
func GetErrorCode(err error) ErrorCode {
	var tableErr *TableError
	if errors.As(err, &tableErr) {
		return tableErr.Code
	}
	var stateErr *StateError
	if errors.As(err, &stateErr) {
		return stateErr.Code
	}
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		return ErrCodeInvalidConfiguration
	}
	return ErrCodeNone
}

// ErrorCollector collects multiple errors during validation
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// HasErrors returns whether any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// GetErrors returns all collected errors
func (ec *ErrorCollector) GetErrors() []error {
	return ec.errors
}

// Err joins the collected errors, or returns nil when there are none
func (ec *ErrorCollector) Err() error {
	if len(ec.errors) == 0 {
		return nil
	}
	if len(ec.errors) == 1 {
		return ec.errors[0]
	}
	return errors.Join(ec.errors...)
}
