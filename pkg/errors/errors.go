package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Error kinds produced by the pipeline and its collaborators. Status
// doubles as the process exit code family for the CLI: 0 only when no
// *Error of any kind occurred.
const (
	CodeInputError              = "INPUT_ERROR"
	CodeDataValidationError     = "DATA_VALIDATION_ERROR"
	CodeSolverError             = "SOLVER_ERROR"
	CodeHardConstraintViolation = "HARD_CONSTRAINT_VIOLATION"
)

// Predefined errors for common scenarios.
var (
	ErrInput          = New(CodeInputError, 1, "invalid or unreadable input")
	ErrDataValidation = New(CodeDataValidationError, 2, "input data failed validation")
	ErrSolver         = New(CodeSolverError, 3, "student assignment solver failed")
	ErrHardConstraint = New(CodeHardConstraintViolation, 4, "hard constraint violated")
	ErrInternal       = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// InputError wraps err as an INPUT_ERROR: unreadable files, malformed
// JSON/TOML, missing required input.
func InputError(message string, err error) *Error {
	return Wrap(err, CodeInputError, ErrInput.Status, message)
}

// DataValidationError wraps err as a DATA_VALIDATION_ERROR: well-formed
// input that fails semantic checks (duplicate ids, dangling references,
// unqualified courses).
func DataValidationError(message string, err error) *Error {
	return Wrap(err, CodeDataValidationError, ErrDataValidation.Status, message)
}

// SolverError wraps err as a SOLVER_ERROR: the ILP backend failed to
// produce a feasible solution or timed out.
func SolverError(message string, err error) *Error {
	return Wrap(err, CodeSolverError, ErrSolver.Status, message)
}

// HardConstraintViolation reports a validator-detected hard constraint
// breach. Never returned by the pipeline itself; the pipeline leaves
// sections unassigned or teacher/room-less instead of failing, and the
// validator is what surfaces the resulting conflict.
func HardConstraintViolation(message string) *Error {
	return New(CodeHardConstraintViolation, ErrHardConstraint.Status, message)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}
