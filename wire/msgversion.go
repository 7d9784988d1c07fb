// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// UserAgentLen is the number of characters of the user agent.  The
	// user agent is a var_str on the wire, but this package keeps it at a
	// fixed length so the version message has a fixed layout.
	UserAgentLen = 12

	// UserAgentSize is the size of the serialized user agent: one length
	// byte followed by UserAgentLen characters.
	UserAgentSize = 1 + UserAgentLen

	// VersionPayloadSize is the size of a serialized version message.
	// Protocol version 4 bytes + services 8 bytes + timestamp 8 bytes +
	// remote and local net addresses + nonce 8 bytes + user agent +
	// start height 4 bytes + relay flag 1 byte.
	VersionPayloadSize = 4 + 8 + 8 + 2*EmbeddedNetAddressSize + 8 +
		UserAgentSize + 4 + 1

	// versionNonceOffset is where the nonce starts in any version payload,
	// regardless of the length of the user agent that follows it.
	versionNonceOffset = 4 + 8 + 8 + 2*EmbeddedNetAddressSize
)

// DefaultUserAgent is the user agent carried by default version messages.
const DefaultUserAgent = "/btcshake:1/"

// RandomUint64 returns a cryptographically random uint64 value.
func RandomUint64() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// MsgVersion implements the version message payload.  It is used by a peer to
// advertise itself as soon as an outbound connection is made.
//
// Fields are only reachable through accessors; use VersionBuilder to produce
// a customized message so every address passes validation.
type MsgVersion struct {
	protocolVersion int32
	services        ServiceFlag

	// Time the message was generated.  This is encoded as an int64 on the
	// wire.
	timestamp time.Time

	// Address of the remote peer.
	addrRecv NetAddress

	// Address of the local peer, kept as the raw wire bytes of an embedded
	// network address.
	addrFrom [EmbeddedNetAddressSize]byte

	// Unique value associated with message that is used to detect self
	// connections.
	nonce uint64

	userAgent   [UserAgentSize]byte
	startHeight int32

	// Whether the remote peer should announce relayed transactions.
	relay bool
}

// SetDefaults fills every field with a usable value: ProtocolVersion,
// SFNodeNetwork, the current time, loopback addresses on DefaultPort, a random
// nonce, DefaultUserAgent, start height zero and relay disabled.
func (msg *MsgVersion) SetDefaults() {
	nonce, err := RandomUint64()
	if err != nil {
		panic(WrapError(ErrInvariantViolation,
			"unable to generate version nonce", err))
	}

	addr := NewNetAddress()
	*msg = MsgVersion{
		protocolVersion: int32(ProtocolVersion),
		services:        SFNodeNetwork,
		timestamp:       time.Unix(time.Now().Unix(), 0),
		addrRecv:        *addr,
		nonce:           nonce,
		startHeight:     0,
		relay:           false,
	}
	copy(msg.addrFrom[:], addr.BigEndian())
	msg.userAgent[0] = UserAgentLen
	copy(msg.userAgent[1:], DefaultUserAgent)
}

// NewMsgVersion returns a version message with default values.
func NewMsgVersion() *MsgVersion {
	var msg MsgVersion
	msg.SetDefaults()
	return &msg
}

// Command returns the command carried in the header of this message.
func (msg *MsgVersion) Command() Command {
	return CmdVersion
}

// ProtocolVersion returns the advertised protocol version.
func (msg *MsgVersion) ProtocolVersion() int32 {
	return msg.protocolVersion
}

// Services returns the advertised services.
func (msg *MsgVersion) Services() ServiceFlag {
	return msg.services
}

// HasService returns whether the specified service is supported by the peer
// that generated the message.
func (msg *MsgVersion) HasService(service ServiceFlag) bool {
	return msg.services&service == service
}

// Timestamp returns the time the message was generated.
func (msg *MsgVersion) Timestamp() time.Time {
	return msg.timestamp
}

// AddrRecv returns a copy of the receiver address.
func (msg *MsgVersion) AddrRecv() NetAddress {
	return msg.addrRecv
}

// AddrFrom returns the raw wire bytes of the sender address.
func (msg *MsgVersion) AddrFrom() [EmbeddedNetAddressSize]byte {
	return msg.addrFrom
}

// AddrFromAddress decodes the sender address.
func (msg *MsgVersion) AddrFromAddress() (*NetAddress, error) {
	return decodeNetAddress(msg.addrFrom[:], AddrEmbedded)
}

// Nonce returns the nonce used to detect self connections.
func (msg *MsgVersion) Nonce() uint64 {
	return msg.nonce
}

// UserAgent returns the user agent string.
func (msg *MsgVersion) UserAgent() string {
	n := int(msg.userAgent[0])
	if n > UserAgentLen {
		n = UserAgentLen
	}
	return string(msg.userAgent[1 : 1+n])
}

// StartHeight returns the last block height seen by the sender.
func (msg *MsgVersion) StartHeight() int32 {
	return msg.startHeight
}

// Relay returns whether the sender asks for transaction relay.
func (msg *MsgVersion) Relay() bool {
	return msg.relay
}

// SerializeSize returns the number of bytes the message occupies.
func (msg *MsgVersion) SerializeSize() int {
	return VersionPayloadSize
}

// BigEndian returns the wire serialization of the message.  It panics when
// the fields do not add up to VersionPayloadSize, which can only happen
// through a layout bug.
func (msg *MsgVersion) BigEndian() []byte {
	w := newFixedWriter("version", VersionPayloadSize)
	w.putUint32LE(uint32(msg.protocolVersion))
	w.putUint64LE(uint64(msg.services))
	w.putUint64LE(uint64(msg.timestamp.Unix()))

	addrRecv := msg.addrRecv
	addrRecv.Variant = AddrEmbedded
	w.putBytes(addrRecv.BigEndian())
	w.putBytes(msg.addrFrom[:])

	w.putUint64LE(msg.nonce)
	w.putBytes(msg.userAgent[:])
	w.putUint32LE(uint32(msg.startHeight))
	var relay uint8
	if msg.relay {
		relay = 1
	}
	w.putUint8(relay)
	return w.finish()
}

// LittleEndian returns the byte reversal of BigEndian.
func (msg *MsgVersion) LittleEndian() []byte {
	return reverseBytes(msg.BigEndian())
}

// decodeMsgVersion decodes a wire serialized version message.
func decodeMsgVersion(b []byte) (*MsgVersion, error) {
	var msg MsgVersion
	r := newFixedReader("version", b)
	msg.protocolVersion = int32(r.uint32LE())
	msg.services = ServiceFlag(r.uint64LE())
	msg.timestamp = time.Unix(int64(r.uint64LE()), 0)

	var addrRecv [EmbeddedNetAddressSize]byte
	r.bytes(addrRecv[:])
	r.bytes(msg.addrFrom[:])
	msg.nonce = r.uint64LE()
	r.bytes(msg.userAgent[:])
	msg.startHeight = int32(r.uint32LE())
	msg.relay = r.uint8() != 0
	r.finish()

	na, err := decodeNetAddress(addrRecv[:], AddrEmbedded)
	if err != nil {
		return nil, err
	}
	msg.addrRecv = *na
	if _, err := decodeNetAddress(msg.addrFrom[:], AddrEmbedded); err != nil {
		return nil, err
	}

	if n := msg.userAgent[0]; n > UserAgentLen {
		str := fmt.Sprintf("user agent length %d exceeds the fixed "+
			"capacity of %d", n, UserAgentLen)
		return nil, messageError(ErrPayloadSizeMismatch, str)
	}

	return &msg, nil
}

// MsgVersionFromLittleEndian decodes a reversed version message.
func MsgVersionFromLittleEndian(b [VersionPayloadSize]byte) (*MsgVersion, error) {
	return decodeMsgVersion(reverseBytes(b[:]))
}

// MsgVersionFromBigEndian decodes a version message in wire order by
// reversing it and decoding the result as little-endian.
func MsgVersionFromBigEndian(b [VersionPayloadSize]byte) (*MsgVersion, error) {
	var r [VersionPayloadSize]byte
	copy(r[:], reverseBytes(b[:]))
	return MsgVersionFromLittleEndian(r)
}

// PeekVersionNonce returns the nonce of a wire serialized version payload of
// any length.  Remote peers send user agents of arbitrary length, but the
// nonce precedes the user agent so its offset is fixed.
func PeekVersionNonce(payload []byte) (uint64, bool) {
	if len(payload) < versionNonceOffset+8 {
		return 0, false
	}
	return littleEndian.Uint64(payload[versionNonceOffset:]), true
}
