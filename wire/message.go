// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MessageHeaderSize is the number of bytes in a bitcoin message header.
// Bitcoin network (magic) 4 bytes + command 12 bytes + payload length 4 bytes +
// checksum 4 bytes.
const MessageHeaderSize = 24

// MaxMessagePayload is the maximum bytes a message can be regardless of other
// individual limits imposed by messages themselves.
const MaxMessagePayload = (1024 * 1024 * 32) // 32MB

// MessageHeader is the envelope every message travels in.
//
// A header starts out unbound: it knows its network and command and, for
// commands with a fixed payload layout, the payload length it expects.  The
// payload length and checksum are only set from real bytes by BindPayload,
// after which the header is bound and ready for transmission.  Headers are
// not reused across payloads.
type MessageHeader struct {
	magic    BitcoinNet         // 4 bytes
	command  Command            // 12 bytes
	length   uint32             // 4 bytes
	checksum [ChecksumSize]byte // 4 bytes

	// expected is the payload length the header was constructed for, or
	// -1 when any length is acceptable.
	expected int64
	bound    bool
}

// NewMessageHeader returns an unbound header for cmd on btcnet that accepts a
// payload of any length.
func NewMessageHeader(btcnet BitcoinNet, cmd Command) *MessageHeader {
	return &MessageHeader{magic: btcnet, command: cmd, expected: -1}
}

// NewVersionHeader returns an unbound version header expecting a payload of
// VersionPayloadSize bytes.
func NewVersionHeader(btcnet BitcoinNet) *MessageHeader {
	return &MessageHeader{
		magic:    btcnet,
		command:  CmdVersion,
		expected: VersionPayloadSize,
	}
}

// NewPingHeader returns an unbound ping header expecting a payload of
// PingPayloadSize bytes.
func NewPingHeader(btcnet BitcoinNet) *MessageHeader {
	return &MessageHeader{
		magic:    btcnet,
		command:  CmdPing,
		expected: PingPayloadSize,
	}
}

// NewVerAckHeader returns a verack header.  A verack has no payload, so its
// checksum is known up front.
func NewVerAckHeader(btcnet BitcoinNet) *MessageHeader {
	return &MessageHeader{
		magic:    btcnet,
		command:  CmdVerAck,
		checksum: EmptyChecksum,
		expected: 0,
	}
}

// Net returns the network the header belongs to.
func (h *MessageHeader) Net() BitcoinNet {
	return h.magic
}

// Command returns the command of the message.
func (h *MessageHeader) Command() Command {
	return h.command
}

// PayloadLength returns the payload length carried by the header.
func (h *MessageHeader) PayloadLength() uint32 {
	return h.length
}

// Checksum returns the payload checksum carried by the header.
func (h *MessageHeader) Checksum() [ChecksumSize]byte {
	return h.checksum
}

// IsBound returns whether the header has been bound to a payload.
func (h *MessageHeader) IsBound() bool {
	return h.bound
}

// BindPayload computes the payload length and checksum from payload.  It fails
// with ErrPayloadSizeMismatch when the header was constructed for a payload of
// a different length, with ErrPayloadTooLarge above MaxMessagePayload and with
// ErrInvariantViolation when the header is already bound.
func (h *MessageHeader) BindPayload(payload []byte) error {
	if h.bound {
		str := fmt.Sprintf("%v header is already bound to a payload",
			h.command)
		return messageError(ErrInvariantViolation, str)
	}

	lenp := len(payload)
	if h.expected >= 0 && int64(lenp) != h.expected {
		str := fmt.Sprintf("%v header expects a payload of %d bytes, "+
			"got %d", h.command, h.expected, lenp)
		return messageError(ErrPayloadSizeMismatch, str)
	}
	if lenp > MaxMessagePayload {
		str := fmt.Sprintf("message payload is too large - encoded "+
			"%d bytes, but maximum message payload is %d bytes",
			lenp, MaxMessagePayload)
		return messageError(ErrPayloadTooLarge, str)
	}

	h.length = uint32(lenp)
	h.checksum = Checksum(payload)
	h.bound = true
	return nil
}

// VerifyPayload checks that payload matches the length and checksum carried
// by the header.
func (h *MessageHeader) VerifyPayload(payload []byte) error {
	if uint32(len(payload)) != h.length {
		str := fmt.Sprintf("header indicates %d bytes, but payload "+
			"has %d", h.length, len(payload))
		return messageError(ErrPayloadSizeMismatch, str)
	}
	checksum := Checksum(payload)
	if checksum != h.checksum {
		str := fmt.Sprintf("payload checksum failed - header "+
			"indicates %x, but actual checksum is %x.",
			h.checksum, checksum)
		return messageError(ErrBadChecksum, str)
	}
	return nil
}

// BigEndian returns the 24-byte wire serialization of the header.
func (h *MessageHeader) BigEndian() []byte {
	w := newFixedWriter("message header", MessageHeaderSize)
	w.putBytes(h.magic.LittleEndian())
	w.putBytes(h.command.BigEndian())
	w.putUint32LE(h.length)
	w.putBytes(h.checksum[:])
	return w.finish()
}

// LittleEndian returns the byte reversal of BigEndian.
func (h *MessageHeader) LittleEndian() []byte {
	return reverseBytes(h.BigEndian())
}

// String returns the header in human-readable form.
func (h *MessageHeader) String() string {
	return fmt.Sprintf("%v %v (%d bytes, checksum %x)", h.magic, h.command,
		h.length, h.checksum)
}

// decodeMessageHeader decodes a wire serialized header.  Decoded headers are
// bound.
func decodeMessageHeader(b []byte) (*MessageHeader, error) {
	var (
		magic   [4]byte
		command [CommandSize]byte
	)
	h := MessageHeader{expected: -1, bound: true}
	r := newFixedReader("message header", b)
	r.bytes(magic[:])
	r.bytes(command[:])
	h.length = r.uint32LE()
	r.bytes(h.checksum[:])
	r.finish()

	h.magic = BitcoinNetFromLittleEndian(magic)
	cmd, err := decodeCommand(command[:])
	if err != nil {
		return nil, err
	}
	h.command = cmd
	return &h, nil
}

// MessageHeaderFromLittleEndian decodes a reversed header.
func MessageHeaderFromLittleEndian(b [MessageHeaderSize]byte) (*MessageHeader, error) {
	return decodeMessageHeader(reverseBytes(b[:]))
}

// MessageHeaderFromBigEndian decodes a header in wire order by reversing it
// and decoding the result as little-endian.
func MessageHeaderFromBigEndian(b [MessageHeaderSize]byte) (*MessageHeader, error) {
	var r [MessageHeaderSize]byte
	copy(r[:], reverseBytes(b[:]))
	return MessageHeaderFromLittleEndian(r)
}

// WriteMessage binds hdr to payload and writes the header followed by the
// payload to w in a single write.  It returns the number of bytes written.
func WriteMessage(w io.Writer, hdr *MessageHeader, payload []byte) (int, error) {
	if err := hdr.BindPayload(payload); err != nil {
		return 0, err
	}

	frame := make([]byte, 0, MessageHeaderSize+len(payload))
	frame = append(frame, hdr.BigEndian()...)
	frame = append(frame, payload...)
	return w.Write(frame)
}

// ReadMessageHeader reads exactly one header from r.
func ReadMessageHeader(r io.Reader) (int, *MessageHeader, error) {
	// Since the header is a fixed size, read it into a buffer first so the
	// proper amount of read bytes is known on a short read.
	var headerBytes [MessageHeaderSize]byte
	n, err := io.ReadFull(r, headerBytes[:])
	if err != nil {
		return n, nil, err
	}
	hdr, err := MessageHeaderFromBigEndian(headerBytes)
	return n, hdr, err
}

// ReadMessage reads a header and exactly the number of payload bytes it
// declares from r, validating the network, the maximum payload size and the
// checksum.  It returns the number of bytes read along with the header and
// payload.
func ReadMessage(r io.Reader, btcnet BitcoinNet) (int, *MessageHeader, []byte, error) {
	totalBytes, hdr, err := ReadMessageHeader(r)
	if err != nil {
		return totalBytes, nil, nil, err
	}

	// Enforce maximum message payload.
	if hdr.length > MaxMessagePayload {
		str := fmt.Sprintf("message payload is too large - header "+
			"indicates %d bytes, but max message payload is %d "+
			"bytes.", hdr.length, MaxMessagePayload)
		return totalBytes, nil, nil, messageError(ErrPayloadTooLarge, str)
	}

	// Check for messages from the wrong bitcoin network.
	if hdr.magic != btcnet {
		discardInput(r, hdr.length)
		str := fmt.Sprintf("message from other network [%v]", hdr.magic)
		return totalBytes, nil, nil, messageError(ErrWrongNetwork, str)
	}

	payload := make([]byte, hdr.length)
	n, err := io.ReadFull(r, payload)
	totalBytes += n
	if err != nil {
		return totalBytes, nil, nil, err
	}

	if err := hdr.VerifyPayload(payload); err != nil {
		return totalBytes, nil, nil, err
	}

	return totalBytes, hdr, payload, nil
}

// discardInput reads n bytes from reader r in chunks and discards the read
// bytes.  This is used to skip payloads when various errors occur and helps
// prevent rogue nodes from causing massive memory allocation through forging
// header length.
func discardInput(r io.Reader, n uint32) {
	_, _ = io.CopyN(io.Discard, r, int64(n))
}

