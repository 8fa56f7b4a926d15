package status

import "errors"

// Kind classifies an error by what the host is supposed to do about it.
type Kind uint8

const (
	// Configuration means the session could not be created at all: the request
	// carried no usable boundary token. No parsing was attempted.
	Configuration Kind = iota + 1
	// MalformedBody means the body violated the multipart format. Parts built
	// so far stay readable for diagnostics, but the session must be treated as
	// failed.
	MalformedBody
	// SinkIO means the underlying part storage failed. The cause is available
	// via errors.Unwrap.
	SinkIO
	// Usage is a programming-contract violation on the caller's side.
	Usage
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func NewError(kind Kind, message string) error {
	return Error{
		Kind:    kind,
		Message: message,
	}
}

// SinkError wraps an underlying storage failure, preserving the cause.
func SinkError(op string, cause error) error {
	return Error{
		Kind:    SinkIO,
		Message: "sink: " + op + ": " + cause.Error(),
		cause:   cause,
	}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

// KindOf returns the Kind of an error, or zero if the error didn't originate
// from this package.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

var (
	ErrNotMultipart    = NewError(Configuration, "content type is not multipart/form-data")
	ErrMissingBoundary = NewError(Configuration, "no boundary parameter in the content type")
	ErrBoundaryTooLong = NewError(Configuration, "boundary token is longer than 70 characters")

	ErrMissingFinalBoundary = NewError(MalformedBody, "body ended before the final boundary")
	ErrUnterminatedHeaders  = NewError(MalformedBody, "part headers are never terminated")
	ErrMalformedHeader      = NewError(MalformedBody, "malformed part header line")
	ErrHeadersTooLarge      = NewError(MalformedBody, "part headers exceed the allowed space")

	ErrFedAfterComplete = NewError(Usage, "a chunk was fed after the body was completed")
	ErrRepeatedComplete = NewError(Usage, "the body was completed twice")
	ErrSinkFinalized    = NewError(Usage, "the sink is already finalized")
	ErrSinkNotFinalized = NewError(Usage, "the sink is not finalized yet")
	ErrSinkReleased     = NewError(Usage, "the sink is already released")
	ErrNotJSON          = NewError(Usage, "the part's content type is not application/json")
)
