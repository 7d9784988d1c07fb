// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package handshake drives the initial version exchange with remote bitcoin
peers.

For every endpoint a Handshaker opens a connection, sends a version message
addressed to the endpoint, and reads back the first framed response.  Many
endpoints are handled concurrently and results are delivered in the order the
handshakes complete:

	h := handshake.New(&handshake.Config{Net: wire.MainNet})
	for res := range h.Start(ctx, endpoints) {
		if res.Err != nil {
			// handle the failure of res.Endpoint
			continue
		}
		// res.Header and res.Payload hold the response
	}

A failure is always confined to its endpoint and reported in its Result.  Each
handshake is bounded by Config.NegotiateTimeout and by the context passed to
Start, so a remote that never answers only delays its own result.

Endpoints can be obtained from DNS seeds with ResolveSeeds or from a host name
with Resolve.  Connections go through Config.Dial, for which ProxyDial
provides a SOCKS5 implementation.
*/
package handshake
