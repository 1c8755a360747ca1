// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-timer.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across backends. CapacityExceeded, NotFound and
// QueueFull are recoverable caller errors and never terminate the driver;
// InitFailed is fatal to startup.
var (
	ErrCapacityExceeded  = errors.New("callback registry capacity exceeded")
	ErrNotFound          = errors.New("callback handle not registered")
	ErrQueueFull         = errors.New("deferred removal queue full")
	ErrAlreadyRegistered = errors.New("callback handle already registered")
	ErrInvalidHandle     = errors.New("nil or empty callback handle")
	ErrInitFailed        = errors.New("timer backend initialization failed")
	ErrAlreadyRunning    = errors.New("timer backend already running")
	ErrNotRunning        = errors.New("timer backend not running")
	ErrInvalidConfig     = errors.New("invalid timer configuration")
)

// ErrorCode classifies structured errors for programmatic handling.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeCapacityExceeded
	CodeNotFound
	CodeQueueFull
	CodeInvalidArgument
	CodeInit
	CodeInternal
)

// Error is a structured error with code and optional context values.
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

// NewError creates a structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext attaches a context value to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
