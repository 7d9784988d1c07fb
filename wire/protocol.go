// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ProtocolVersion is the protocol version this package speaks.  It is
	// the first version whose version message carries the relay flag, which
	// fixes the layout produced by MsgVersion.
	ProtocolVersion uint32 = 70001

	// DefaultPort is the port used by default network addresses.
	DefaultPort uint16 = 8333
)

// ServiceFlag identifies services supported by a bitcoin peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork is a flag used to indicate a peer is a full node.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO is a flag used to indicate a peer supports the
	// getutxos and utxos commands (BIP0064).
	SFNodeGetUTXO

	// SFNodeBloom is a flag used to indicate a peer supports bloom
	// filtering.
	SFNodeBloom

	// SFNodeWitness is a flag used to indicate a peer supports blocks
	// and transactions including witness data (BIP0144).
	SFNodeWitness

	// SFNodeXthin is a flag used to indicate a peer supports xthin blocks.
	SFNodeXthin

	// SFNodeBit5 is a flag used to indicate a peer supports a service
	// defined by bit 5.
	SFNodeBit5

	// SFNodeCF is a flag used to indicate a peer supports committed
	// filters (CFs).
	SFNodeCF
)

// SFNodeNetworkLimited is a flag used to indicate a peer serves only the
// last 288 blocks (BIP0159).
const SFNodeNetworkLimited ServiceFlag = 1 << 10

// Map of service flags back to their constant names for pretty printing.
var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork:        "SFNodeNetwork",
	SFNodeGetUTXO:        "SFNodeGetUTXO",
	SFNodeBloom:          "SFNodeBloom",
	SFNodeWitness:        "SFNodeWitness",
	SFNodeXthin:          "SFNodeXthin",
	SFNodeBit5:           "SFNodeBit5",
	SFNodeCF:             "SFNodeCF",
	SFNodeNetworkLimited: "SFNodeNetworkLimited",
}

// orderedSFStrings is an ordered list of service flags from highest to
// lowest.
var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeGetUTXO,
	SFNodeBloom,
	SFNodeWitness,
	SFNodeXthin,
	SFNodeBit5,
	SFNodeCF,
	SFNodeNetworkLimited,
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	// No flags are set.
	if f == 0 {
		return "0x0"
	}

	// Add individual bit flags.
	s := ""
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			s += sfStrings[flag] + "|"
			f -= flag
		}
	}

	// Add any remaining flags which aren't accounted for as hex.
	s = strings.TrimRight(s, "|")
	if f != 0 {
		s += "|0x" + strconv.FormatUint(uint64(f), 16)
	}
	s = strings.TrimLeft(s, "|")
	return s
}

// BigEndian returns the 8-byte big-endian encoding of the flags.
func (f ServiceFlag) BigEndian() []byte {
	b := make([]byte, 8)
	bigEndian.PutUint64(b, uint64(f))
	return b
}

// LittleEndian returns the 8-byte little-endian encoding of the flags, which
// is the form carried on the wire.
func (f ServiceFlag) LittleEndian() []byte {
	return reverseBytes(f.BigEndian())
}

// BitcoinNet represents which bitcoin network a message belongs to.
type BitcoinNet uint32

// Constants used to indicate the message bitcoin network.  They can also be
// used to seek to the next message when a stream's state is unknown, but
// this package does not provide that functionality since it's generally a
// better idea to simply disconnect clients that are misbehaving over TCP.
const (
	// MainNet represents the main bitcoin network.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet represents the regression test network.
	TestNet BitcoinNet = 0xdab5bffa

	// TestNet3 represents the test network (version 3).
	TestNet3 BitcoinNet = 0x0709110b

	// SigNet represents the public default SigNet.
	SigNet BitcoinNet = 0x40cf030a

	// SimNet represents the simulation test network.
	SimNet BitcoinNet = 0x12141c16
)

// bnStrings is a map of bitcoin networks back to their constant names for
// pretty printing.
var bnStrings = map[BitcoinNet]string{
	MainNet:  "MainNet",
	TestNet:  "TestNet",
	TestNet3: "TestNet3",
	SigNet:   "SigNet",
	SimNet:   "SimNet",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}

// BigEndian returns the canonical big-endian pattern of the magic.
func (n BitcoinNet) BigEndian() []byte {
	b := make([]byte, 4)
	bigEndian.PutUint32(b, uint32(n))
	return b
}

// LittleEndian returns the byte reversal of the big-endian pattern.  This is
// the order in which the magic appears at the start of every message.
func (n BitcoinNet) LittleEndian() []byte {
	return reverseBytes(n.BigEndian())
}

// BitcoinNetFromLittleEndian decodes a magic in wire order.
func BitcoinNetFromLittleEndian(b [4]byte) BitcoinNet {
	return BitcoinNet(littleEndian.Uint32(b[:]))
}

// BitcoinNetFromBigEndian decodes a magic in its canonical big-endian
// pattern by reversing it and decoding the result as little-endian.
func BitcoinNetFromBigEndian(b [4]byte) BitcoinNet {
	var r [4]byte
	copy(r[:], reverseBytes(b[:]))
	return BitcoinNetFromLittleEndian(r)
}
