package lowpix

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the interface implemented by every error the codecs return.
// All of them can be matched against the sentinels below with [errors.Is].
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrInvalidInput is returned when an encoder or decoder is given an empty
// buffer, or a buffer too large for the 24-bit size field.
var ErrInvalidInput = rootError.WithMessage("Invalid input")

// ErrFormatMismatch is returned by a decoder when the block's tag byte belongs
// to a different codec family. It's detected before any other parsing.
var ErrFormatMismatch = rootError.WithMessage("Block format mismatch")

// ErrEncodingOverflow is returned by the Huffman encoder when a code or a table
// offset doesn't fit in the fields the format gives it.
var ErrEncodingOverflow = rootError.WithMessage("Encoding overflow")

// ErrCorruptBlock is returned when a block has the right tag but its contents
// can't produce the declared number of bytes.
var ErrCorruptBlock = rootError.WithMessage("Corrupt block")

// ErrNotSupported is returned when decoding is requested for a family that is
// only ever decoded by fixed-function hardware.
var ErrNotSupported = rootError.WithMessage("Operation not supported")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
