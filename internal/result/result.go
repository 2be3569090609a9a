// internal/result/result.go
package result

import (
	"errors"
	"fmt"
)

// Code is the outcome of one drive operation.
// Every operation maps to exactly one Code via CodeOf.
type Code uint16

const (
	Success Code = iota
	NotSupported
	BadParameter
	MemoryFailure
	Failure
	Unknown
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case NotSupported:
		return "not supported"
	case BadParameter:
		return "bad parameter"
	case MemoryFailure:
		return "memory failure"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Error carries a non-success Code out of an operation.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorCode exposes the numeric code for status delivery.
func (e *Error) ErrorCode() uint16 { return uint16(e.Code) }

// New builds a coded error. A Success code yields nil.
func New(code Code, op string, err error) error {
	if code == Success {
		return nil
	}
	return &Error{Code: code, Op: op, Err: err}
}

// Errorf builds a coded error with a formatted cause.
func Errorf(code Code, op string, format string, args ...any) error {
	return New(code, op, fmt.Errorf(format, args...))
}

// CodeOf maps an operation's error to its Code.
// nil is Success; an error that never passed through this package is Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
