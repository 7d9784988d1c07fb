// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// PingPayloadSize is the size of a serialized ping message.
const PingPayloadSize = 8

// MsgPing implements the ping message payload, which is just a nonce the
// remote peer echoes in its pong.
type MsgPing struct {
	// Unique value associated with message that is used to identify
	// specific ping message.
	Nonce uint64
}

// SetDefaults assigns a random nonce.
func (msg *MsgPing) SetDefaults() {
	nonce, err := RandomUint64()
	if err != nil {
		panic(WrapError(ErrInvariantViolation,
			"unable to generate ping nonce", err))
	}
	msg.Nonce = nonce
}

// NewMsgPing returns a new ping message that conforms to the Message
// interface.  See MsgPing for details.
func NewMsgPing(nonce uint64) *MsgPing {
	return &MsgPing{
		Nonce: nonce,
	}
}

// Command returns the command carried in the header of this message.
func (msg *MsgPing) Command() Command {
	return CmdPing
}

// BigEndian returns the wire serialization of the message.
func (msg *MsgPing) BigEndian() []byte {
	w := newFixedWriter("ping", PingPayloadSize)
	w.putUint64LE(msg.Nonce)
	return w.finish()
}

// LittleEndian returns the byte reversal of BigEndian.
func (msg *MsgPing) LittleEndian() []byte {
	return reverseBytes(msg.BigEndian())
}

// MsgPingFromLittleEndian decodes a reversed ping message.
func MsgPingFromLittleEndian(b [PingPayloadSize]byte) *MsgPing {
	r := newFixedReader("ping", reverseBytes(b[:]))
	msg := &MsgPing{Nonce: r.uint64LE()}
	r.finish()
	return msg
}

// MsgPingFromBigEndian decodes a ping message in wire order by reversing it
// and decoding the result as little-endian.
func MsgPingFromBigEndian(b [PingPayloadSize]byte) *MsgPing {
	var r [PingPayloadSize]byte
	copy(r[:], reverseBytes(b[:]))
	return MsgPingFromLittleEndian(r)
}
