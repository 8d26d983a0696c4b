package wire

import (
	"errors"
	"fmt"
)

// Structural validation errors.
var (
	ErrHeaderTagMismatch  = errors.New("header tag mismatch")
	ErrLengthTagMismatch  = errors.New("body length tag mismatch")
	ErrMsgTypeTagMismatch = errors.New("message type tag mismatch")
	ErrTrailerTagMismatch = errors.New("trailer tag mismatch")
	ErrLengthMismatch     = errors.New("body length mismatch")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// Tokenization errors.
var (
	ErrMalformedTagNumber    = errors.New("malformed tag number")
	ErrMalformedInteger      = errors.New("malformed integer")
	ErrDataLengthOverflow    = errors.New("data length exceeds trailer boundary")
	ErrMissingDataTerminator = errors.New("missing delimiter after data field")
)

// Typed accessor errors.
var (
	ErrTagNotFound    = errors.New("tag not found")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrMalformedDate  = errors.New("malformed date")
	ErrMalformedValue = errors.New("malformed value")
)

// MessageError carries enough detail to diagnose a failed parse or accessor
// call without re-scanning the buffer: the error kind, the byte offset it was
// detected at, and the expected versus actual values where a comparison
// failed. It unwraps to its kind sentinel for errors.Is matching.
type MessageError struct {
	Kind     error
	Offset   int
	Tag      int         // tag number involved, 0 when not applicable
	Expected interface{} // nil when the kind carries no comparison
	Actual   interface{}
}

// Error implements the error interface.
func (e *MessageError) Error() string {
	msg := fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	if e.Tag != 0 {
		msg = fmt.Sprintf("%v (tag %d) at offset %d", e.Kind, e.Tag, e.Offset)
	}
	if e.Expected != nil || e.Actual != nil {
		msg += fmt.Sprintf(": expected %v, got %v", e.Expected, e.Actual)
	}
	return msg
}

// Unwrap returns the kind sentinel.
func (e *MessageError) Unwrap() error {
	return e.Kind
}

func newMessageError(kind error, offset int) *MessageError {
	return &MessageError{Kind: kind, Offset: offset}
}

func newCompareError(kind error, offset int, expected, actual interface{}) *MessageError {
	return &MessageError{Kind: kind, Offset: offset, Expected: expected, Actual: actual}
}

func newTagError(kind error, tag int, offset int) *MessageError {
	return &MessageError{Kind: kind, Tag: tag, Offset: offset}
}
