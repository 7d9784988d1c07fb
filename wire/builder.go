// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// Defaulter is the constraint satisfied by pointers to payload types that can
// fill themselves with default values.  The payload type itself is held by
// value, so it must be safe to copy.
type Defaulter[T any] interface {
	*T
	SetDefaults()
}

// PayloadBuilder wraps a default constructed payload and applies overrides to
// it before the final payload is handed out by Build.  Builders are values:
// every override returns a new builder and leaves the receiver untouched.
type PayloadBuilder[T any] struct {
	payload T
}

// NewPayloadBuilder returns a builder wrapping a default constructed T.
func NewPayloadBuilder[T any, PT Defaulter[T]]() PayloadBuilder[T] {
	var b PayloadBuilder[T]
	PT(&b.payload).SetDefaults()
	return b
}

// With applies fn to a copy of the wrapped payload.  When fn fails the error
// is returned together with the unchanged builder, so a failed override is
// never partially visible.
func (b PayloadBuilder[T]) With(fn func(*T) error) (PayloadBuilder[T], error) {
	payload := b.payload
	if err := fn(&payload); err != nil {
		return b, err
	}
	return PayloadBuilder[T]{payload: payload}, nil
}

// Build returns the finalized payload.
func (b PayloadBuilder[T]) Build() T {
	return b.payload
}
