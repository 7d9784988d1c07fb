// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// ErrorCode identifies a kind of error.  Error codes satisfy the error
// interface so they can be used as targets for errors.Is.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidAddressFormat indicates an IP address that does not carry
	// the IPv4-mapped IPv6 prefix (ten zero bytes followed by 0xffff).
	ErrInvalidAddressFormat ErrorCode = iota

	// ErrPayloadSizeMismatch indicates the payload supplied to a header
	// does not have the length the header was constructed for, or that a
	// received payload disagrees with the length its header declared.
	ErrPayloadSizeMismatch

	// ErrTransportFailure indicates a connect, read or write failure of the
	// underlying byte stream.
	ErrTransportFailure

	// ErrInvariantViolation indicates a logically unreachable state such as
	// a structure whose field widths do not add up to its declared size.
	ErrInvariantViolation

	// ErrInvalidCommand indicates a command name that is not one of the
	// supported commands or is not properly zero padded.
	ErrInvalidCommand

	// ErrWrongNetwork indicates a message whose magic does not match the
	// network it was read for.
	ErrWrongNetwork

	// ErrBadChecksum indicates a payload whose checksum does not match the
	// one carried in its header.
	ErrBadChecksum

	// ErrPayloadTooLarge indicates a header declaring a payload larger than
	// MaxMessagePayload.
	ErrPayloadTooLarge

	// ErrSelfConnection indicates the remote end answered with a version
	// nonce we sent ourselves.
	ErrSelfConnection

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidAddressFormat: "ErrInvalidAddressFormat",
	ErrPayloadSizeMismatch:  "ErrPayloadSizeMismatch",
	ErrTransportFailure:     "ErrTransportFailure",
	ErrInvariantViolation:   "ErrInvariantViolation",
	ErrInvalidCommand:       "ErrInvalidCommand",
	ErrWrongNetwork:         "ErrWrongNetwork",
	ErrBadChecksum:          "ErrBadChecksum",
	ErrPayloadTooLarge:      "ErrPayloadTooLarge",
	ErrSelfConnection:       "ErrSelfConnection",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error satisfies the error interface and prints the name of the code.
func (e ErrorCode) Error() string {
	return e.String()
}

// Error describes a wire or handshake failure.  The caller can use
// errors.Is with one of the ErrorCode constants to find out the kind of
// failure, and errors.Unwrap to reach the underlying cause, if any.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying cause, may be nil
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying cause.
func (e Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrorCode carried by e.
func (e Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.ErrorCode
}

// messageError creates an Error given a set of arguments.
func messageError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// WrapError creates an Error of kind c that wraps err.
func WrapError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}
