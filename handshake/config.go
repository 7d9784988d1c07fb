// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handshake

import (
	"time"

	"github.com/btcsuite/btcshake/wire"
)

const (
	// DefaultNegotiateTimeout is the duration of inactivity before we
	// timeout an endpoint that hasn't answered our version message.
	DefaultNegotiateTimeout = 30 * time.Second

	// defaultSentNonceCacheSize is the number of nonces remembered for
	// self connection detection.
	defaultSentNonceCacheSize = 50
)

// Config is the struct to hold configuration options useful to a Handshaker.
type Config struct {
	// Net identifies the network the handshakes are for.  Responses from
	// other networks are rejected.
	Net wire.BitcoinNet

	// Services specifies which services to advertise as supported by the
	// local peer.
	Services wire.ServiceFlag

	// StartHeight is the last block height announced to the remote peer.
	StartHeight int32

	// NegotiateTimeout bounds each handshake from dial to response.  It
	// defaults to DefaultNegotiateTimeout.
	NegotiateTimeout time.Duration

	// Dial opens the connection to an endpoint.  It defaults to a direct
	// TCP dial.
	Dial DialFunc

	// Metrics receives handshake metrics.  It may be nil.
	Metrics *Metrics

	// SentNonceCacheSize bounds the number of version nonces remembered to
	// detect connections to ourselves.
	SentNonceCacheSize uint
}
