// Package errors defines the error taxonomy shared by every SIPP package.
//
// The package builds on github.com/cockroachdb/errors so that errors carry
// stack traces (visible with %+v) while remaining compatible with the
// standard errors.Is / errors.As helpers:
//
//   - Sentinel errors (ErrEmptyData, ErrNoData, ...) for errors.Is checks
//   - Typed errors (ModelError, ValueError, DimensionError, NotFittedError,
//     ColumnError) for errors.As checks
//   - Recover for turning panics inside an operation into returned errors
//
// Example:
//
//	if err := lr.Fit(X, y); err != nil {
//		var dimErr *errors.DimensionError
//		if errors.As(err, &dimErr) {
//			// handle shape problems
//		}
//	}
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	// ErrEmptyData is returned when an operation receives no samples.
	ErrEmptyData = errors.New("empty data")
	// ErrDimensionMismatch is returned when matrix or vector shapes disagree.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrSingularMatrix is returned when a system cannot be decomposed.
	ErrSingularMatrix = errors.New("singular matrix")
	// ErrNotFitted is returned when an estimator is used before Fit.
	ErrNotFitted = errors.New("model not fitted")
	// ErrNoData is returned when a district has no rows in the dataset.
	ErrNoData = errors.New("no data")
	// ErrNoSelection is returned when a prediction is requested without a district.
	ErrNoSelection = errors.New("no district selected")
	// ErrMissingColumn is returned when a dataset header lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrBadArtifact is returned when a persisted model cannot be decoded.
	ErrBadArtifact = errors.New("invalid model artifact")
)

// Re-exported helpers so callers need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ModelError reports a failure inside a model operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

// NewModelError creates a ModelError.
func NewModelError(op, kind string, err error) error {
	return &ModelError{Op: op, Kind: kind, Err: err}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sipp: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("sipp: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// ValueError reports an invalid argument or input value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) error {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("sipp: %s: %s", e.Op, e.Message)
}

// DimensionError reports a shape mismatch along Axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) error {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("sipp: %s: dimension mismatch on %s: expected %d, got %d",
		e.Op, axis, e.Expected, e.Got)
}

// Is lets errors.Is(err, ErrDimensionMismatch) match any DimensionError.
func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// NotFittedError reports use of an estimator before it was trained.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) error {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("sipp: %s: %s called before Fit", e.ModelName, e.Method)
}

// Is lets errors.Is(err, ErrNotFitted) match any NotFittedError.
func (e *NotFittedError) Is(target error) bool { return target == ErrNotFitted }

// ColumnError reports a bad cell in a tabular input. Row is the 1-based
// data line (the header is line 0).
type ColumnError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

// NewColumnError creates a ColumnError.
func NewColumnError(row int, column, value string, err error) error {
	return &ColumnError{Row: row, Column: column, Value: value, Err: err}
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("sipp: row %d: column %s: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

// Recover converts a panic in the calling function into an error stored in
// *err. It must be deferred directly:
//
//	func (m *Model) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "Model.Fit")
//		...
//	}
func Recover(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = errors.Wrapf(e, "%s: recovered from panic", op)
		return
	}
	*err = errors.Newf("%s: recovered from panic: %v", op, r)
}
