package hdrkit

import "fmt"

// ConversionError is returned when an image has no readable pixel buffer or a
// matrix cannot be turned into an image.
type ConversionError struct {
	Op  string
	Msg string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("hdrkit: %s: %s", e.Op, e.Msg)
}

// PreconditionError is returned when the inputs of an operation are inconsistent,
// before any processing starts.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return "hdrkit: precondition failed: " + e.Msg
}

// FusionError is returned when exposure fusion produced no result.
type FusionError struct {
	Err error
}

func (e *FusionError) Error() string {
	if e.Err == nil {
		return "hdrkit: exposure fusion failed"
	}
	return "hdrkit: exposure fusion failed: " + e.Err.Error()
}

func (e *FusionError) Unwrap() error { return e.Err }
