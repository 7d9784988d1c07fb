// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestMessageHeaderBind ensures headers only accept payloads of the length
// they were constructed for and can be bound once.
func TestMessageHeaderBind(t *testing.T) {
	payload := NewMsgVersion().BigEndian()

	hdr := NewVersionHeader(MainNet)
	require.False(t, hdr.IsBound())

	err := hdr.BindPayload(payload[:VersionPayloadSize-1])
	require.ErrorIs(t, err, ErrPayloadSizeMismatch)
	require.False(t, hdr.IsBound())
	require.Zero(t, hdr.PayloadLength())

	require.NoError(t, hdr.BindPayload(payload))
	require.True(t, hdr.IsBound())
	require.Equal(t, uint32(VersionPayloadSize), hdr.PayloadLength())
	require.Equal(t, Checksum(payload), hdr.Checksum())
	require.Equal(t, CmdVersion, hdr.Command())
	require.Equal(t, MainNet, hdr.Net())

	err = hdr.BindPayload(payload)
	require.ErrorIs(t, err, ErrInvariantViolation)

	ping := NewPingHeader(TestNet3)
	require.ErrorIs(t, ping.BindPayload(payload), ErrPayloadSizeMismatch)
	require.NoError(t, ping.BindPayload(NewMsgPing(1).BigEndian()))

	unsized := NewMessageHeader(SimNet, CmdPing)
	require.NoError(t, unsized.BindPayload([]byte{1, 2, 3}))
	require.Equal(t, uint32(3), unsized.PayloadLength())
}

// TestMessageHeaderTooLarge ensures payloads above MaxMessagePayload are
// refused when binding.
func TestMessageHeaderTooLarge(t *testing.T) {
	hdr := NewMessageHeader(MainNet, CmdPing)
	err := hdr.BindPayload(make([]byte, MaxMessagePayload+1))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.False(t, hdr.IsBound())
}

// TestVerAckHeaderWire tests the wire encoding of an empty verack message.
func TestVerAckHeaderWire(t *testing.T) {
	hdr := NewVerAckHeader(MainNet)
	require.Equal(t, EmptyChecksum, hdr.Checksum())

	want := []byte{
		0xf9, 0xbe, 0xb4, 0xd9, // Magic mainnet
		0x76, 0x65, 0x72, 0x61, 0x63, 0x6b, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // Command "verack"
		0x00, 0x00, 0x00, 0x00, // Payload length
		0x5d, 0xf6, 0xe0, 0xe2, // Checksum
	}
	if got := hdr.BigEndian(); !bytes.Equal(got, want) {
		t.Fatalf("BigEndian\n got: %s want: %s", spew.Sdump(got),
			spew.Sdump(want))
	}

	require.NoError(t, hdr.BindPayload(nil))
	require.Equal(t, EmptyChecksum, hdr.Checksum())
	require.Equal(t, want, hdr.BigEndian())
}

// TestMessageHeaderWire tests header decoding from both byte orders.
func TestMessageHeaderWire(t *testing.T) {
	hdr := NewVersionHeader(TestNet3)
	require.NoError(t, hdr.BindPayload(NewMsgVersion().BigEndian()))

	var be, le [MessageHeaderSize]byte
	copy(be[:], hdr.BigEndian())
	copy(le[:], hdr.LittleEndian())

	require.Equal(t, []byte{0x0b, 0x11, 0x09, 0x07}, be[:4])
	require.Equal(t, []byte{0x62, 0x00, 0x00, 0x00}, be[16:20])

	// Decoded headers accept any length, so compare the wire fields.
	for name, decode := range map[string]func() (*MessageHeader, error){
		"big endian":    func() (*MessageHeader, error) { return MessageHeaderFromBigEndian(be) },
		"little endian": func() (*MessageHeader, error) { return MessageHeaderFromLittleEndian(le) },
	} {
		got, err := decode()
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
			continue
		}
		if got.Net() != hdr.Net() || got.Command() != hdr.Command() ||
			got.PayloadLength() != hdr.PayloadLength() ||
			got.Checksum() != hdr.Checksum() || !got.IsBound() {

			t.Errorf("%s\n got: %s want: %s", name, spew.Sdump(got),
				spew.Sdump(hdr))
		}
	}

	// An unknown command is rejected.
	bad := be
	copy(bad[4:4+CommandSize], "getaddr\x00\x00\x00\x00\x00")
	_, err := MessageHeaderFromBigEndian(bad)
	require.ErrorIs(t, err, ErrInvalidCommand)
}

// TestWriteReadMessage tests a full message round trip.
func TestWriteReadMessage(t *testing.T) {
	msg := NewMsgVersion()
	payload := msg.BigEndian()

	var buf bytes.Buffer
	n, err := WriteMessage(&buf, NewVersionHeader(MainNet), payload)
	require.NoError(t, err)
	require.Equal(t, MessageHeaderSize+VersionPayloadSize, n)

	rn, hdr, got, err := ReadMessage(&buf, MainNet)
	require.NoError(t, err)
	require.Equal(t, n, rn)
	require.Equal(t, CmdVersion, hdr.Command())
	require.Equal(t, payload, got)

	var arr [VersionPayloadSize]byte
	copy(arr[:], got)
	decoded, err := MsgVersionFromBigEndian(arr)
	require.NoError(t, err)
	if !reflect.DeepEqual(decoded, msg) {
		t.Errorf("MsgVersionFromBigEndian\n got: %s want: %s",
			spew.Sdump(decoded), spew.Sdump(msg))
	}

	// Writing through a size checked header fails before any bytes go out.
	buf.Reset()
	_, err = WriteMessage(&buf, NewVersionHeader(MainNet), payload[:10])
	require.ErrorIs(t, err, ErrPayloadSizeMismatch)
	require.Zero(t, buf.Len())
}

// TestReadMessageErrors performs negative tests against wire decode of
// messages to confirm error paths work correctly.
func TestReadMessageErrors(t *testing.T) {
	frame := func(btcnet BitcoinNet, payload []byte) []byte {
		var buf bytes.Buffer
		_, err := WriteMessage(&buf, NewMessageHeader(btcnet, CmdPing),
			payload)
		require.NoError(t, err)
		return buf.Bytes()
	}
	ping := NewMsgPing(0xdeadbeef).BigEndian()

	// Corrupt payload.
	corrupt := frame(MainNet, ping)
	corrupt[len(corrupt)-1] ^= 0xff

	// Header claiming more than the maximum payload.
	tooLarge := frame(MainNet, nil)
	littleEndian.PutUint32(tooLarge[16:20], MaxMessagePayload+1)

	tests := []struct {
		name string
		buf  []byte
		err  error
	}{
		{"bad checksum", corrupt, ErrBadChecksum},
		{"wrong network", frame(TestNet3, ping), ErrWrongNetwork},
		{"payload too large", tooLarge, ErrPayloadTooLarge},
		{"short header", frame(MainNet, ping)[:10], io.ErrUnexpectedEOF},
		{"short payload", frame(MainNet, ping)[:MessageHeaderSize+3], io.ErrUnexpectedEOF},
		{"empty", nil, io.EOF},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		_, _, _, err := ReadMessage(bytes.NewReader(test.buf), MainNet)
		if !errors.Is(err, test.err) {
			t.Errorf("ReadMessage #%d (%s): got %v want %v", i,
				test.name, err, test.err)
		}
	}
}

// TestReadMessageDiscardsWrongNetwork ensures the payload of a message from
// another network is consumed so the stream stays aligned.
func TestReadMessageDiscardsWrongNetwork(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteMessage(&buf, NewPingHeader(SigNet),
		NewMsgPing(1).BigEndian())
	require.NoError(t, err)
	_, err = WriteMessage(&buf, NewPingHeader(MainNet),
		NewMsgPing(2).BigEndian())
	require.NoError(t, err)

	_, _, _, err = ReadMessage(&buf, MainNet)
	require.ErrorIs(t, err, ErrWrongNetwork)

	_, hdr, payload, err := ReadMessage(&buf, MainNet)
	require.NoError(t, err)
	require.Equal(t, MainNet, hdr.Net())

	var arr [PingPayloadSize]byte
	copy(arr[:], payload)
	require.Equal(t, uint64(2), MsgPingFromBigEndian(arr).Nonce)
}
