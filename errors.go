package glcmd

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrNotSupported is returned by operations this encoder does not
	// implement yet. It reflects missing backend coverage, not caller error.
	ErrNotSupported = errors.New("glcmd: operation not supported")

	// ErrValidation wraps every validation failure recorded by a Recorder.
	ErrValidation = errors.New("glcmd: validation failed")

	// ErrIndividualResetNotAllowed is returned by Reset on a recorder whose
	// pool does not allow individual resets.
	ErrIndividualResetNotAllowed = errors.New("glcmd: associated pool must allow individual resets")

	// ErrRecordingInvalid is returned when submitting a recorder whose
	// validation flag is raised.
	ErrRecordingInvalid = errors.New("glcmd: recording contains invalid commands")

	// ErrNotFinished is returned when submitting a recorder that has not
	// finished recording.
	ErrNotFinished = errors.New("glcmd: recording is not finished")

	// ErrStaleRecording is returned when the pool was reset after the
	// recorder began recording.
	ErrStaleRecording = errors.New("glcmd: pool was reset after recording began")

	// ErrInvalidLimits is returned by Limits.Validate.
	ErrInvalidLimits = errors.New("glcmd: invalid device limits")
)

// Contract violations. These are raised with panic: they mean the storage
// is being misused and no recovery makes sense.
var (
	// ErrStorageInUse is the panic value when storage is accessed while
	// another access holds it.
	ErrStorageInUse = errors.New("glcmd: command storage is in use")

	// ErrPoolDestroyed is the panic value when storage of a destroyed pool
	// is accessed.
	ErrPoolDestroyed = errors.New("glcmd: command pool was destroyed")
)

// Validation failures. Each one is recorded wrapped in ErrValidation.
var (
	ErrNoPrimitive      = errors.New("no primitive bound")
	ErrNoIndexType      = errors.New("no index type bound")
	ErrNoViewports      = errors.New("number of viewports can not be zero")
	ErrTooManyViewports = errors.New("number of viewports exceeds the number of maximum viewports")
	ErrNoScissors       = errors.New("number of scissors can not be zero")
	ErrTooManyScissors  = errors.New("number of scissors exceeds the number of maximum viewports")
	ErrNotRecording     = errors.New("command buffer is not recording")
	ErrNilPipeline      = errors.New("no graphics pipeline given")
)

// notSupported returns the error reported by an unimplemented operation.
func notSupported(op string) error {
	return fmt.Errorf("%w: %s", ErrNotSupported, op)
}
