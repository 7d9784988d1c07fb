// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"time"
)

// VersionBuilder is a PayloadBuilder for version messages with the validated
// setters specific to that payload.
type VersionBuilder struct {
	PayloadBuilder[MsgVersion]
}

// NewVersionBuilder returns a builder wrapping a default version message.
func NewVersionBuilder() VersionBuilder {
	return VersionBuilder{NewPayloadBuilder[MsgVersion]()}
}

// with applies fn through the generic builder and rewraps the result.
func (b VersionBuilder) with(fn func(*MsgVersion) error) (VersionBuilder, error) {
	pb, err := b.PayloadBuilder.With(fn)
	return VersionBuilder{pb}, err
}

// WithAddrRecv sets the IP of the receiver address.  ip must be in
// IPv4-mapped form.
func (b VersionBuilder) WithAddrRecv(ip [IPSize]byte) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		return msg.addrRecv.SetIP(ip)
	})
}

// WithAddrRecvPort sets the port of the receiver address.
func (b VersionBuilder) WithAddrRecvPort(port uint16) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		msg.addrRecv.SetPort(port)
		return nil
	})
}

// WithAddrFrom replaces the sender address with a default address carrying
// ip, which must be in IPv4-mapped form.
func (b VersionBuilder) WithAddrFrom(ip [IPSize]byte) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		na := NewNetAddress()
		if err := na.SetIP(ip); err != nil {
			return err
		}
		copy(msg.addrFrom[:], na.BigEndian())
		return nil
	})
}

// WithAddrFromPort overwrites the port of the sender address, which occupies
// the last two bytes of the raw address in big-endian order.
func (b VersionBuilder) WithAddrFromPort(port uint16) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		bigEndian.PutUint16(msg.addrFrom[EmbeddedNetAddressSize-2:], port)
		return nil
	})
}

// WithServices sets the services advertised by the message.
func (b VersionBuilder) WithServices(services ServiceFlag) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		msg.services = services
		return nil
	})
}

// WithTimestamp sets the message time, rounded to one second.
func (b VersionBuilder) WithTimestamp(t time.Time) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		msg.timestamp = time.Unix(t.Unix(), 0)
		return nil
	})
}

// WithNonce sets the self connection detection nonce.
func (b VersionBuilder) WithNonce(nonce uint64) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		msg.nonce = nonce
		return nil
	})
}

// WithStartHeight sets the last block height seen by the sender.
func (b VersionBuilder) WithStartHeight(height int32) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		msg.startHeight = height
		return nil
	})
}

// WithRelay sets whether the remote peer should relay transactions.
func (b VersionBuilder) WithRelay(relay bool) (VersionBuilder, error) {
	return b.with(func(msg *MsgVersion) error {
		msg.relay = relay
		return nil
	})
}
