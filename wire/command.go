// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
)

// CommandSize is the fixed size of all commands in the common bitcoin message
// header.  Shorter commands must be zero padded.
const CommandSize = 12

// Command is the closed set of commands this package can frame.
type Command uint8

// Commands used in bitcoin message headers which describe the type of message.
const (
	CmdVersion Command = iota
	CmdVerAck
	CmdPing
)

var cmdStrings = map[Command]string{
	CmdVersion: "version",
	CmdVerAck:  "verack",
	CmdPing:    "ping",
}

// String returns the command name as it appears on the wire, without
// padding.
func (c Command) String() string {
	if s, ok := cmdStrings[c]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Command (%d)", uint8(c))
}

// BigEndian returns the 12-byte zero padded ASCII command name.
func (c Command) BigEndian() []byte {
	s, ok := cmdStrings[c]
	if !ok {
		panic(messageError(ErrInvariantViolation,
			fmt.Sprintf("no wire name for command %d", uint8(c))))
	}
	w := newFixedWriter("command", CommandSize)
	w.putBytes([]byte(s))
	w.putBytes(make([]byte, CommandSize-len(s)))
	return w.finish()
}

// LittleEndian returns the byte reversal of BigEndian.
func (c Command) LittleEndian() []byte {
	return reverseBytes(c.BigEndian())
}

// CommandFromLittleEndian decodes a command field given in reversed order.
func CommandFromLittleEndian(b [CommandSize]byte) (Command, error) {
	return decodeCommand(reverseBytes(b[:]))
}

// CommandFromBigEndian decodes a 12-byte wire command field by reversing it
// and decoding the result as little-endian.  The name must be one of the
// supported commands and every byte after it must be zero.
func CommandFromBigEndian(b [CommandSize]byte) (Command, error) {
	var r [CommandSize]byte
	copy(r[:], reverseBytes(b[:]))
	return CommandFromLittleEndian(r)
}

func decodeCommand(field []byte) (Command, error) {
	name := field
	if i := bytes.IndexByte(name, 0x00); i >= 0 {
		if len(bytes.Trim(name[i:], "\x00")) != 0 {
			str := fmt.Sprintf("command %q has non-zero bytes "+
				"after its terminator", field)
			return 0, messageError(ErrInvalidCommand, str)
		}
		name = name[:i]
	}

	for cmd, s := range cmdStrings {
		if s == string(name) {
			return cmd, nil
		}
	}

	str := fmt.Sprintf("unsupported command %q", name)
	return 0, messageError(ErrInvalidCommand, str)
}
