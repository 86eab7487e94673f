// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for slotpool.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrBufferPoolClosed  = fmt.Errorf("buffer pool is closed")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrResourceExhausted = fmt.Errorf("resource exhausted")
	ErrWriteTruncated    = fmt.Errorf("write truncated")
	ErrMisconfigured     = fmt.Errorf("pool misconfigured")
	ErrReleased          = fmt.Errorf("buffer already released")
	ErrPoolBusy          = fmt.Errorf("pool has live leases")
	ErrNotSupported      = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeTruncated
	ErrCodeMisconfigured
	ErrCodeReleased
	ErrCodeBusy
	ErrCodeNotSupported
	ErrCodeInternal
)

// sentinel maps a code to the package-level error errors.Is should match.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeResourceExhausted:
		return ErrResourceExhausted
	case ErrCodeTruncated:
		return ErrWriteTruncated
	case ErrCodeMisconfigured:
		return ErrMisconfigured
	case ErrCodeReleased:
		return ErrReleased
	case ErrCodeBusy:
		return ErrPoolBusy
	case ErrCodeNotSupported:
		return ErrNotSupported
	}
	return nil
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether target is the sentinel error for e.Code.
func (e *Error) Is(target error) bool {
	s := e.Code.sentinel()
	return s != nil && s == target
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Int returns an integer context value, or 0 when absent.
func (e *Error) Int(key string) int {
	v, _ := e.Context[key].(int)
	return v
}
