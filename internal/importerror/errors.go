// Package importerror defines the typed errors raised by the import pipeline.
package importerror

import "fmt"

// MissingColumnError indicates an expected column is absent from the CSV header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q in header", e.Column)
}

// MissingValueError indicates a required cell is empty after trimming.
type MissingValueError struct {
	Column string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value for column %q", e.Column)
}

// InvalidVehicleError indicates a row carries no vehicle number.
type InvalidVehicleError struct{}

func (e *InvalidVehicleError) Error() string {
	return "vehicle number is empty"
}

// NoDataError indicates the CSV has no data rows at all. It is fatal to the
// whole invocation: no row processing is attempted.
type NoDataError struct {
	Lines int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("CSV contains no data rows (%d non-empty line(s))", e.Lines)
}
