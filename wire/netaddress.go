// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"net"
	"time"
)

const (
	// IPSize is the size of the IP field of a network address.
	IPSize = 16

	// EmbeddedNetAddressSize is the size of a network address inside a
	// version message: services 8 bytes + ip 16 bytes + port 2 bytes.
	EmbeddedNetAddressSize = 26

	// NetAddressSize is the size of a standalone network address, which
	// adds a 4 byte timestamp in front of the embedded layout.
	NetAddressSize = 4 + EmbeddedNetAddressSize
)

// ipv4MappedPrefix is the prefix every IP carried by this package must have.
// Native IPv6 addresses are not supported yet.
var ipv4MappedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// DefaultIP is ::ffff:127.0.0.1, the IP of a default network address.
var DefaultIP = [IPSize]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 127, 0, 0, 1}

// AddrVariant selects which of the two network address layouts is used.
type AddrVariant uint8

const (
	// AddrEmbedded is the layout used inside a version message.  It has no
	// timestamp since the version message carries its own.
	AddrEmbedded AddrVariant = iota

	// AddrStandalone is the layout used everywhere else and leads with a
	// 4 byte timestamp.
	AddrStandalone
)

// String returns the variant in human-readable form.
func (v AddrVariant) String() string {
	switch v {
	case AddrEmbedded:
		return "embedded"
	case AddrStandalone:
		return "standalone"
	}
	return fmt.Sprintf("Unknown AddrVariant (%d)", uint8(v))
}

// NetAddress defines information about a peer on the network including the time
// it was last seen, the services it supports, its IP address, and port.
type NetAddress struct {
	// Variant selects whether the timestamp is serialized.
	Variant AddrVariant

	// Last time the address was seen.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.  It is only
	// serialized for AddrStandalone.
	Timestamp time.Time

	// Bitfield which identifies the services supported by the address.
	Services ServiceFlag

	// IP address of the peer in IPv4-mapped IPv6 form.  Use SetIP to
	// change it so the format is validated.
	IP [IPSize]byte

	// Port the peer is using.  This is encoded in big endian on the wire
	// which differs from most everything else.
	Port uint16
}

// CheckIP returns an ErrInvalidAddressFormat error unless ip begins with the
// IPv4-mapped IPv6 prefix.
func CheckIP(ip [IPSize]byte) error {
	if !bytes.Equal(ip[:len(ipv4MappedPrefix)], ipv4MappedPrefix[:]) {
		str := fmt.Sprintf("ip %x is not an IPv4-mapped IPv6 address", ip[:])
		return messageError(ErrInvalidAddressFormat, str)
	}
	return nil
}

// IPv4Mapped converts ip to the 16 byte IPv4-mapped form.  Native IPv6
// addresses are rejected with ErrInvalidAddressFormat.
func IPv4Mapped(ip net.IP) ([IPSize]byte, error) {
	var out [IPSize]byte
	ip4 := ip.To4()
	if ip4 == nil {
		str := fmt.Sprintf("ip %v is not an IPv4 address", ip)
		return out, messageError(ErrInvalidAddressFormat, str)
	}
	copy(out[:], ipv4MappedPrefix[:])
	copy(out[len(ipv4MappedPrefix):], ip4)
	return out, nil
}

// NewNetAddress returns the default network address: embedded layout,
// ::ffff:127.0.0.1, SFNodeNetwork and DefaultPort.
func NewNetAddress() *NetAddress {
	return &NetAddress{
		Variant:  AddrEmbedded,
		Services: SFNodeNetwork,
		IP:       DefaultIP,
		Port:     DefaultPort,
	}
}

// NewNetAddressIP returns a network address of the given variant for ip, which
// must be in IPv4-mapped form.  Standalone addresses are stamped with the
// current time rounded to one second.
func NewNetAddressIP(ip [IPSize]byte, port uint16, services ServiceFlag,
	variant AddrVariant) (*NetAddress, error) {

	na := &NetAddress{
		Variant:  variant,
		Services: services,
		Port:     port,
	}
	if variant == AddrStandalone {
		na.Timestamp = time.Unix(time.Now().Unix(), 0)
	}
	if err := na.SetIP(ip); err != nil {
		return nil, err
	}
	return na, nil
}

// SetIP validates and assigns ip.  The address is left unchanged on error.
func (na *NetAddress) SetIP(ip [IPSize]byte) error {
	if err := CheckIP(ip); err != nil {
		return err
	}
	na.IP = ip
	return nil
}

// SetPort assigns the port.
func (na *NetAddress) SetPort(port uint16) {
	na.Port = port
}

// HasService returns whether the specified service is supported by the address.
func (na *NetAddress) HasService(service ServiceFlag) bool {
	return na.Services&service == service
}

// AddService adds service as a supported service by the peer generating the
// message.
func (na *NetAddress) AddService(service ServiceFlag) {
	na.Services |= service
}

// NetIP returns the IP as a net.IP.
func (na *NetAddress) NetIP() net.IP {
	return net.IP(append([]byte(nil), na.IP[:]...))
}

// SerializeSize returns the number of bytes the address occupies for its
// variant.
func (na *NetAddress) SerializeSize() int {
	if na.Variant == AddrStandalone {
		return NetAddressSize
	}
	return EmbeddedNetAddressSize
}

// BigEndian returns the wire serialization of the address: timestamp (only
// for AddrStandalone), services, ip and port.
func (na *NetAddress) BigEndian() []byte {
	w := newFixedWriter("netaddress", na.SerializeSize())
	if na.Variant == AddrStandalone {
		// NOTE: The bitcoin protocol uses a uint32 for the timestamp so
		// it will stop working somewhere around 2106.
		w.putUint32LE(uint32(na.Timestamp.Unix()))
	}
	w.putUint64LE(uint64(na.Services))
	w.putBytes(na.IP[:])

	// Sigh.  Bitcoin protocol mixes little and big endian.
	w.putUint16BE(na.Port)
	return w.finish()
}

// LittleEndian returns the byte reversal of BigEndian.
func (na *NetAddress) LittleEndian() []byte {
	return reverseBytes(na.BigEndian())
}

// String returns the address in host:port form.
func (na *NetAddress) String() string {
	return net.JoinHostPort(na.NetIP().String(), fmt.Sprint(na.Port))
}

// decodeNetAddress decodes a wire serialized address of the given variant.
func decodeNetAddress(b []byte, variant AddrVariant) (*NetAddress, error) {
	na := NetAddress{Variant: variant}
	r := newFixedReader("netaddress", b)
	if variant == AddrStandalone {
		na.Timestamp = time.Unix(int64(r.uint32LE()), 0)
	}
	na.Services = ServiceFlag(r.uint64LE())
	var ip [IPSize]byte
	r.bytes(ip[:])
	na.Port = r.uint16BE()
	r.finish()

	if err := na.SetIP(ip); err != nil {
		return nil, err
	}
	return &na, nil
}

// EmbeddedNetAddressFromLittleEndian decodes a reversed embedded address.
func EmbeddedNetAddressFromLittleEndian(b [EmbeddedNetAddressSize]byte) (*NetAddress, error) {
	return decodeNetAddress(reverseBytes(b[:]), AddrEmbedded)
}

// EmbeddedNetAddressFromBigEndian decodes an embedded address in wire order
// by reversing it and decoding the result as little-endian.
func EmbeddedNetAddressFromBigEndian(b [EmbeddedNetAddressSize]byte) (*NetAddress, error) {
	var r [EmbeddedNetAddressSize]byte
	copy(r[:], reverseBytes(b[:]))
	return EmbeddedNetAddressFromLittleEndian(r)
}

// NetAddressFromLittleEndian decodes a reversed standalone address.
func NetAddressFromLittleEndian(b [NetAddressSize]byte) (*NetAddress, error) {
	return decodeNetAddress(reverseBytes(b[:]), AddrStandalone)
}

// NetAddressFromBigEndian decodes a standalone address in wire order by
// reversing it and decoding the result as little-endian.
func NetAddressFromBigEndian(b [NetAddressSize]byte) (*NetAddress, error) {
	var r [NetAddressSize]byte
	copy(r[:], reverseBytes(b[:]))
	return NetAddressFromLittleEndian(r)
}
