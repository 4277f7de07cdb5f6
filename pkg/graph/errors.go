package graph

import "fmt"

// DataError indicates malformed or empty input: missing columns, an empty
// edge list, a zero-node graph. It maps to a client-facing "data
// unavailable/invalid" condition and is never retried.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "data error: " + e.Reason
}

// NewDataError creates a DataError with a formatted reason.
func NewDataError(format string, args ...interface{}) *DataError {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}

// ComputationError indicates a defensive check failed during analysis.
// Under the construction invariants (positive weights, m > 0) it should
// never occur; it is fatal to the request and never silently swallowed.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return "computation error: " + e.Reason
}

// NewComputationError creates a ComputationError with a formatted reason.
func NewComputationError(format string, args ...interface{}) *ComputationError {
	return &ComputationError{Reason: fmt.Sprintf(format, args...)}
}
