package field

import (
	"errors"
	"fmt"
)

// Domain errors for diffusion runs.
var (
	// ErrInvalidInput indicates a malformed grid or misaligned input data.
	ErrInvalidInput = errors.New("gde: invalid input")

	// ErrInputFile indicates a missing or unreadable external table.
	ErrInputFile = errors.New("gde: input file error")

	// ErrConfiguration indicates an unrecognised option value.
	ErrConfiguration = errors.New("gde: configuration error")

	// ErrStabilityViolation indicates a time step beyond the explicit scheme's bound.
	ErrStabilityViolation = errors.New("gde: time step exceeds stability criterion")

	// ErrInvalidState indicates a profile containing NaN or Inf.
	ErrInvalidState = errors.New("gde: invalid state (NaN or Inf detected)")
)

// StabilityError reports the candidate step and the bound it exceeded.
type StabilityError struct {
	Step  int
	Time  float64
	Dt    float64
	DtMax float64
	DMax  float64
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("user-specified time step (dt = %g s) exceeds stability criterion (dt < %g s); "+
		"choose a lower value using the --dt option, or increase the spatial step in the input data", e.Dt, e.DtMax)
}

func (e *StabilityError) Unwrap() error {
	return ErrStabilityViolation
}

// InputFileError wraps a failure to read an external table.
type InputFileError struct {
	Path string
	Err  error
}

func (e *InputFileError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *InputFileError) Unwrap() []error {
	return []error{ErrInputFile, e.Err}
}

// TableMismatchError reports a table whose point count disagrees with the grid.
// It matches both ErrInputFile and ErrInvalidInput.
type TableMismatchError struct {
	Path string
	Want int
	Got  int
}

func (e *TableMismatchError) Error() string {
	return fmt.Sprintf("%s has %d points, expected %d to match the grid", e.Path, e.Got, e.Want)
}

func (e *TableMismatchError) Unwrap() []error {
	return []error{ErrInputFile, ErrInvalidInput}
}
