// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the bitcoin wire protocol messages needed for the
initial version handshake.

# Message Overview

Every message travels in a 24-byte header made of the network magic, a
NUL padded command name, the payload length and a checksum of the payload.
The checksum is the first four bytes of the double SHA-256 of the payload.
Headers are created unbound for a network and command and are bound to the
serialized payload before transmission:

	msg := wire.NewMsgVersion()
	_, err := wire.WriteMessage(conn, wire.NewVersionHeader(wire.MainNet),
		msg.BigEndian())

The supported commands are version, verack and ping.

# Byte Order

Every fixed width entity implements EndianEncoder.  BigEndian returns the
serialization as it appears on the wire, in which the integer fields are
little-endian and the port of a network address is big-endian.  LittleEndian
returns the exact byte reversal of that serialization.  The matching
FromLittleEndian and FromBigEndian functions decode either form.

# Building Payloads

Payloads start from their defaults and are customized through a builder.
Builders are values, so every override returns a new builder:

	b, err := wire.NewVersionBuilder().WithAddrRecv(ip)
	if err != nil {
		// ip is not in IPv4-mapped form
	}
	msg := b.Build()

# Errors

Errors returned by this package are of type Error and match their ErrorCode
with errors.Is, for example errors.Is(err, wire.ErrInvalidAddressFormat).
Violations of the fixed layouts indicate a bug and panic with an Error
carrying ErrInvariantViolation.
*/
package wire
