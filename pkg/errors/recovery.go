// Package errors provides error handling utilities for cancelprep.
//
// This file converts unexpected panics inside a pipeline stage into
// structured errors so the CLI can report them like any other failure.

package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError is an error created from a recovered panic.
type PanicError struct {
	// PanicValue is the original value passed to panic()
	PanicValue interface{}

	// StackTrace is the goroutine stack at the time of the panic
	StackTrace string

	// Stage names the pipeline stage that panicked
	Stage string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Stage, e.PanicValue)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String includes the stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s", e.Stage, e.PanicValue, e.StackTrace)
}

// MarshalZerologObject adds the stage and panic value to a zerolog event.
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("stage", e.Stage).
		Str("panic", fmt.Sprint(e.PanicValue)).
		Str("type", "PanicError")
}

// NewPanicError creates a PanicError for the given stage.
func NewPanicError(stage string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Stage:      stage,
	}
}

// Recover converts a panic into an error. It must be deferred with a pointer
// to the caller's named error result:
//
//	func run() (err error) {
//	    defer errors.Recover(&err, "balance")
//	    ...
//	}
//
// An error already assigned before the panic is kept in the chain.
func Recover(err *error, stage string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = Wrapf(*err, "panic in %s: %v", stage, r)
			return
		}
		*err = NewPanicError(stage, r)
	}
}

// SafeExecute runs fn and turns any panic into a PanicError.
//
// Example:
//
//	err := SafeExecute("encode", func() error {
//	    return encoder.Fit(train)
//	})
func SafeExecute(stage string, fn func() error) (err error) {
	defer Recover(&err, stage)
	return fn()
}
