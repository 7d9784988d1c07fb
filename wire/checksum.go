// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ChecksumSize is the number of bytes of the double hash carried in a message
// header.
const ChecksumSize = 4

// EmptyChecksum is the checksum of an empty payload, as carried by messages
// such as verack.
var EmptyChecksum = [ChecksumSize]byte{0x5d, 0xf6, 0xe0, 0xe2}

// Checksum returns the first four bytes of sha256(sha256(b)) in digest order.
// This is the integrity tag stored in message headers.
func Checksum(b []byte) [ChecksumSize]byte {
	var sum [ChecksumSize]byte
	copy(sum[:], chainhash.DoubleHashB(b)[:ChecksumSize])
	return sum
}

// DoubleHash returns the full sha256(sha256(b)) digest.  The String method of
// the returned hash renders it byte-reversed, which is how block hashes are
// conventionally displayed.
func DoubleHash(b []byte) chainhash.Hash {
	return chainhash.DoubleHashH(b)
}
