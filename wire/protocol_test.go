// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

// TestServiceFlagStringer tests the stringized output for service flag types.
func TestServiceFlagStringer(t *testing.T) {
	tests := []struct {
		in   ServiceFlag
		want string
	}{
		{0, "0x0"},
		{SFNodeNetwork, "SFNodeNetwork"},
		{SFNodeGetUTXO, "SFNodeGetUTXO"},
		{SFNodeBloom, "SFNodeBloom"},
		{SFNodeWitness, "SFNodeWitness"},
		{SFNodeXthin, "SFNodeXthin"},
		{SFNodeBit5, "SFNodeBit5"},
		{SFNodeCF, "SFNodeCF"},
		{SFNodeNetworkLimited, "SFNodeNetworkLimited"},
		{0xffffffff, "SFNodeNetwork|SFNodeGetUTXO|SFNodeBloom|SFNodeWitness|SFNodeXthin|SFNodeBit5|SFNodeCF|SFNodeNetworkLimited|0xfffffb80"},
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

// TestBitcoinNetStringer tests the stringized output for bitcoin net types.
func TestBitcoinNetStringer(t *testing.T) {
	tests := []struct {
		in   BitcoinNet
		want string
	}{
		{MainNet, "MainNet"},
		{TestNet, "TestNet"},
		{TestNet3, "TestNet3"},
		{SigNet, "SigNet"},
		{SimNet, "SimNet"},
		{0xffffffff, "Unknown BitcoinNet (4294967295)"},
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

// TestBitcoinNetEndian ensures the magic of every network reverses cleanly
// and that the little-endian form is what starts a message on the wire.
func TestBitcoinNetEndian(t *testing.T) {
	tests := []struct {
		in   BitcoinNet
		wire []byte
	}{
		{MainNet, []byte{0xf9, 0xbe, 0xb4, 0xd9}},
		{TestNet, []byte{0xfa, 0xbf, 0xb5, 0xda}},
		{TestNet3, []byte{0x0b, 0x11, 0x09, 0x07}},
		{SigNet, []byte{0x0a, 0x03, 0xcf, 0x40}},
		{SimNet, []byte{0x16, 0x1c, 0x14, 0x12}},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		le := test.in.LittleEndian()
		if !bytes.Equal(le, test.wire) {
			t.Errorf("LittleEndian #%d (%v): got %x want %x", i,
				test.in, le, test.wire)
			continue
		}
		if !bytes.Equal(le, reverseBytes(test.in.BigEndian())) {
			t.Errorf("LittleEndian #%d (%v): not the reversal of "+
				"BigEndian %x", i, test.in, test.in.BigEndian())
			continue
		}

		var leArr, beArr [4]byte
		copy(leArr[:], le)
		copy(beArr[:], test.in.BigEndian())
		if got := BitcoinNetFromLittleEndian(leArr); got != test.in {
			t.Errorf("BitcoinNetFromLittleEndian #%d: got %v want %v",
				i, got, test.in)
		}
		if got := BitcoinNetFromBigEndian(beArr); got != test.in {
			t.Errorf("BitcoinNetFromBigEndian #%d: got %v want %v",
				i, got, test.in)
		}
	}
}

// TestServiceFlagEndian ensures service flags are carried as 8 little-endian
// bytes on the wire.
func TestServiceFlagEndian(t *testing.T) {
	f := SFNodeNetwork | SFNodeWitness | SFNodeNetworkLimited
	want := []byte{0x09, 0x04, 0, 0, 0, 0, 0, 0}
	if got := f.LittleEndian(); !bytes.Equal(got, want) {
		t.Fatalf("LittleEndian: got %x want %x", got, want)
	}
	if got := f.BigEndian(); !bytes.Equal(got, reverseBytes(want)) {
		t.Fatalf("BigEndian: got %x want %x", got, reverseBytes(want))
	}
}
