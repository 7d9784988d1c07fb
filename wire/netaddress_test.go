// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// TestNetAddress tests the NetAddress API.
func TestNetAddress(t *testing.T) {
	na := NewNetAddress()

	// Ensure the defaults are loopback, full node and the default port.
	if na.IP != DefaultIP {
		t.Errorf("NewNetAddress: wrong ip - got %x, want %x", na.IP,
			DefaultIP)
	}
	if !na.NetIP().Equal(net.ParseIP("127.0.0.1")) {
		t.Errorf("NetIP: got %v, want 127.0.0.1", na.NetIP())
	}
	if na.Port != DefaultPort {
		t.Errorf("NewNetAddress: wrong port - got %v, want %v", na.Port,
			DefaultPort)
	}
	if !na.HasService(SFNodeNetwork) {
		t.Errorf("HasService: SFNodeNetwork service not set")
	}
	if na.HasService(SFNodeBloom) {
		t.Errorf("HasService: SFNodeBloom service is set")
	}
	na.AddService(SFNodeBloom)
	if na.Services != SFNodeNetwork|SFNodeBloom {
		t.Errorf("AddService: wrong services - got %v, want %v",
			na.Services, SFNodeNetwork|SFNodeBloom)
	}
	if na.String() != "127.0.0.1:8333" {
		t.Errorf("String: got %s", na.String())
	}

	// Ensure the serialized size is known without serializing.
	if na.SerializeSize() != EmbeddedNetAddressSize {
		t.Errorf("SerializeSize: got %d want %d", na.SerializeSize(),
			EmbeddedNetAddressSize)
	}
	na.Variant = AddrStandalone
	if na.SerializeSize() != NetAddressSize {
		t.Errorf("SerializeSize: got %d want %d", na.SerializeSize(),
			NetAddressSize)
	}
}

// TestNetAddressSetIP ensures only IPv4-mapped addresses are accepted and that
// a rejected address leaves the previous IP in place.
func TestNetAddressSetIP(t *testing.T) {
	mapped, err := IPv4Mapped(net.ParseIP("8.0.0.1"))
	if err != nil {
		t.Fatalf("IPv4Mapped: %v", err)
	}

	na := NewNetAddress()
	if err := na.SetIP(mapped); err != nil {
		t.Fatalf("SetIP: unexpected error %v", err)
	}
	want := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // SFNodeNetwork
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xff, 0xff, 0x08, 0x00, 0x00, 0x01, // IP 8.0.0.1
		0x20, 0x8d, // Port 8333 in big-endian
	}
	if got := na.BigEndian(); !bytes.Equal(got, want) {
		t.Fatalf("BigEndian: got %x want %x", got, want)
	}

	var native [IPSize]byte
	copy(native[:], net.ParseIP("2001:db8::1"))
	almost := mapped
	almost[11] = 0xfe

	bad := []struct {
		name string
		ip   [IPSize]byte
	}{
		{"all zero", [IPSize]byte{}},
		{"native ipv6", native},
		{"broken prefix", almost},
	}

	t.Logf("Running %d tests", len(bad))
	for i, test := range bad {
		err := na.SetIP(test.ip)
		if !errors.Is(err, ErrInvalidAddressFormat) {
			t.Errorf("SetIP #%d (%s): got %v want %v", i, test.name,
				err, ErrInvalidAddressFormat)
			continue
		}
		if na.IP != mapped {
			t.Errorf("SetIP #%d (%s): ip modified on error - %x", i,
				test.name, na.IP)
		}
	}

	if _, err := NewNetAddressIP([IPSize]byte{}, 1, 0, AddrEmbedded); !errors.Is(err, ErrInvalidAddressFormat) {
		t.Errorf("NewNetAddressIP: got %v want %v", err,
			ErrInvalidAddressFormat)
	}
	if _, err := IPv4Mapped(net.ParseIP("2001:db8::1")); !errors.Is(err, ErrInvalidAddressFormat) {
		t.Errorf("IPv4Mapped: got %v want %v", err,
			ErrInvalidAddressFormat)
	}
}

// TestNetAddressWire tests the NetAddress wire encode and decode for both
// variants.
func TestNetAddressWire(t *testing.T) {
	// baseNetAddr is used in the various tests as a baseline NetAddress.
	baseNetAddr := NetAddress{
		Variant:   AddrStandalone,
		Timestamp: time.Unix(0x495fab29, 0), // 2009-01-03 12:15:05 -0600 CST
		Services:  SFNodeNetwork,
		IP:        DefaultIP,
		Port:      8333,
	}

	// baseNetAddrNoTS is baseNetAddr in the embedded layout.
	baseNetAddrNoTS := baseNetAddr
	baseNetAddrNoTS.Variant = AddrEmbedded
	baseNetAddrNoTS.Timestamp = time.Time{}

	// baseNetAddrEncoded is the wire encoded bytes of baseNetAddr.
	baseNetAddrEncoded := []byte{
		0x29, 0xab, 0x5f, 0x49, // Timestamp
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // SFNodeNetwork
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xff, 0xff, 0x7f, 0x00, 0x00, 0x01, // IP 127.0.0.1
		0x20, 0x8d, // Port 8333 in big-endian
	}

	// baseNetAddrNoTSEncoded is the wire encoded bytes of baseNetAddrNoTS.
	baseNetAddrNoTSEncoded := []byte{
		// No timestamp
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // SFNodeNetwork
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xff, 0xff, 0x7f, 0x00, 0x00, 0x01, // IP 127.0.0.1
		0x20, 0x8d, // Port 8333 in big-endian
	}

	// Standalone layout.
	if got := baseNetAddr.BigEndian(); !bytes.Equal(got, baseNetAddrEncoded) {
		t.Errorf("BigEndian standalone\n got: %s want: %s",
			spew.Sdump(got), spew.Sdump(baseNetAddrEncoded))
	}
	var full [NetAddressSize]byte
	copy(full[:], baseNetAddrEncoded)
	decoded, err := NetAddressFromBigEndian(full)
	if err != nil {
		t.Fatalf("NetAddressFromBigEndian: %v", err)
	}
	if !reflect.DeepEqual(*decoded, baseNetAddr) {
		t.Errorf("NetAddressFromBigEndian\n got: %s want: %s",
			spew.Sdump(decoded), spew.Sdump(baseNetAddr))
	}
	var fullLE [NetAddressSize]byte
	copy(fullLE[:], baseNetAddr.LittleEndian())
	decoded, err = NetAddressFromLittleEndian(fullLE)
	if err != nil || !reflect.DeepEqual(*decoded, baseNetAddr) {
		t.Errorf("NetAddressFromLittleEndian\n got: %s (%v) want: %s",
			spew.Sdump(decoded), err, spew.Sdump(baseNetAddr))
	}

	// Embedded layout drops the timestamp.
	embedded := baseNetAddr
	embedded.Variant = AddrEmbedded
	if got := embedded.BigEndian(); !bytes.Equal(got, baseNetAddrNoTSEncoded) {
		t.Errorf("BigEndian embedded\n got: %s want: %s",
			spew.Sdump(got), spew.Sdump(baseNetAddrNoTSEncoded))
	}
	var short [EmbeddedNetAddressSize]byte
	copy(short[:], baseNetAddrNoTSEncoded)
	decoded, err = EmbeddedNetAddressFromBigEndian(short)
	if err != nil {
		t.Fatalf("EmbeddedNetAddressFromBigEndian: %v", err)
	}
	if !reflect.DeepEqual(*decoded, baseNetAddrNoTS) {
		t.Errorf("EmbeddedNetAddressFromBigEndian\n got: %s want: %s",
			spew.Sdump(decoded), spew.Sdump(baseNetAddrNoTS))
	}
	var shortLE [EmbeddedNetAddressSize]byte
	copy(shortLE[:], embedded.LittleEndian())
	decoded, err = EmbeddedNetAddressFromLittleEndian(shortLE)
	if err != nil || !reflect.DeepEqual(*decoded, baseNetAddrNoTS) {
		t.Errorf("EmbeddedNetAddressFromLittleEndian\n got: %s (%v) "+
			"want: %s", spew.Sdump(decoded), err,
			spew.Sdump(baseNetAddrNoTS))
	}

	// Decoding an address without the mapped prefix fails.
	var zero [EmbeddedNetAddressSize]byte
	if _, err := EmbeddedNetAddressFromBigEndian(zero); !errors.Is(err, ErrInvalidAddressFormat) {
		t.Errorf("EmbeddedNetAddressFromBigEndian: got %v want %v",
			err, ErrInvalidAddressFormat)
	}
}
