// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// EndianEncoder is implemented by every entity that has a fixed width wire
// representation.
//
// For scalar entities BigEndian is the big-endian encoding of the value.  For
// composite entities BigEndian is the field-by-field serialization in
// declaration order, which is the form transmitted on the wire.  In both
// cases LittleEndian is the exact byte reversal of BigEndian.  Decoders
// follow the same rule: the big-endian path reverses its input and hands it
// to the little-endian path.
type EndianEncoder interface {
	BigEndian() []byte
	LittleEndian() []byte
}

var (
	littleEndian = binary.LittleEndian
	bigEndian    = binary.BigEndian
)

// reverseBytes returns a reversed copy of b.
func reverseBytes(b []byte) []byte {
	r := make([]byte, len(b))
	for i := range b {
		r[len(b)-1-i] = b[i]
	}
	return r
}

// fixedWriter is a cursor over a buffer of a declared structure size.  Every
// put advances the offset, and finish asserts that the structure was filled
// exactly.  Overflowing the buffer or finishing short of it is a layout bug,
// so both panic.
type fixedWriter struct {
	name string
	buf  []byte
	off  int
}

// newFixedWriter returns a cursor for a structure of size bytes.  The name is
// only used in panic messages.
func newFixedWriter(name string, size int) *fixedWriter {
	return &fixedWriter{name: name, buf: make([]byte, size)}
}

func (w *fixedWriter) next(n int) []byte {
	if w.off+n > len(w.buf) {
		panic(messageError(ErrInvariantViolation, fmt.Sprintf(
			"%s: write of %d bytes at offset %d overflows "+
				"declared size %d", w.name, n, w.off, len(w.buf))))
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b
}

func (w *fixedWriter) putBytes(p []byte) {
	copy(w.next(len(p)), p)
}

func (w *fixedWriter) putUint8(v uint8) {
	w.next(1)[0] = v
}

func (w *fixedWriter) putUint16BE(v uint16) {
	bigEndian.PutUint16(w.next(2), v)
}

func (w *fixedWriter) putUint32LE(v uint32) {
	littleEndian.PutUint32(w.next(4), v)
}

func (w *fixedWriter) putUint64LE(v uint64) {
	littleEndian.PutUint64(w.next(8), v)
}

// finish returns the serialized structure after asserting every declared
// byte was written.
func (w *fixedWriter) finish() []byte {
	if w.off != len(w.buf) {
		panic(messageError(ErrInvariantViolation, fmt.Sprintf(
			"%s: wrote %d bytes, declared size is %d", w.name,
			w.off, len(w.buf))))
	}
	return w.buf
}

// fixedReader is the decoding counterpart of fixedWriter.  Reads past the end
// panic for the same reason writes do: callers hand it arrays of the exact
// declared size.
type fixedReader struct {
	name string
	buf  []byte
	off  int
}

func newFixedReader(name string, buf []byte) *fixedReader {
	return &fixedReader{name: name, buf: buf}
}

func (r *fixedReader) next(n int) []byte {
	if r.off+n > len(r.buf) {
		panic(messageError(ErrInvariantViolation, fmt.Sprintf(
			"%s: read of %d bytes at offset %d overflows "+
				"declared size %d", r.name, n, r.off, len(r.buf))))
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *fixedReader) bytes(dst []byte) {
	copy(dst, r.next(len(dst)))
}

func (r *fixedReader) uint8() uint8 {
	return r.next(1)[0]
}

func (r *fixedReader) uint16BE() uint16 {
	return bigEndian.Uint16(r.next(2))
}

func (r *fixedReader) uint32LE() uint32 {
	return littleEndian.Uint32(r.next(4))
}

func (r *fixedReader) uint64LE() uint64 {
	return littleEndian.Uint64(r.next(8))
}

// finish asserts the whole structure was consumed.
func (r *fixedReader) finish() {
	if r.off != len(r.buf) {
		panic(messageError(ErrInvariantViolation, fmt.Sprintf(
			"%s: read %d bytes, declared size is %d", r.name,
			r.off, len(r.buf))))
	}
}
