// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"io"
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrInvalidAddressFormat, "ErrInvalidAddressFormat"},
		{ErrPayloadSizeMismatch, "ErrPayloadSizeMismatch"},
		{ErrTransportFailure, "ErrTransportFailure"},
		{ErrInvariantViolation, "ErrInvariantViolation"},
		{ErrInvalidCommand, "ErrInvalidCommand"},
		{ErrWrongNetwork, "ErrWrongNetwork"},
		{ErrBadChecksum, "ErrBadChecksum"},
		{ErrPayloadTooLarge, "ErrPayloadTooLarge"},
		{ErrSelfConnection, "ErrSelfConnection"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestError tests the error output and matching for the Error type.
func TestError(t *testing.T) {
	plain := messageError(ErrBadChecksum, "checksum failed")
	if plain.Error() != "checksum failed" {
		t.Errorf("Error: got %q", plain.Error())
	}
	if !errors.Is(plain, ErrBadChecksum) {
		t.Errorf("errors.Is: plain error does not match its code")
	}
	if errors.Is(plain, ErrWrongNetwork) {
		t.Errorf("errors.Is: plain error matches another code")
	}

	wrapped := WrapError(ErrTransportFailure, "read header", io.EOF)
	if wrapped.Error() != "read header: EOF" {
		t.Errorf("Error: got %q", wrapped.Error())
	}
	if !errors.Is(wrapped, ErrTransportFailure) {
		t.Errorf("errors.Is: wrapped error does not match its code")
	}
	if !errors.Is(wrapped, io.EOF) {
		t.Errorf("errors.Is: wrapped error does not match its cause")
	}

	var werr Error
	if !errors.As(error(wrapped), &werr) || werr.ErrorCode != ErrTransportFailure {
		t.Errorf("errors.As: got %v", werr)
	}
}
