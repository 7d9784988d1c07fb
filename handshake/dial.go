// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handshake

import (
	"context"
	"net"
	"strconv"

	"github.com/btcsuite/go-socks/socks"
)

// DialFunc is the signature of the function used to open the connection to
// an endpoint.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// defaultDial opens a direct connection.
func defaultDial(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, network, addr)
}

// ProxyDial returns a DialFunc that connects through the SOCKS5 proxy at
// proxyAddr.  When torIsolation is set every connection uses fresh random
// credentials so Tor builds a separate circuit for it.
func ProxyDial(proxyAddr, username, password string, torIsolation bool) DialFunc {
	proxy := &socks.Proxy{
		Addr:         proxyAddr,
		Username:     username,
		Password:     password,
		TorIsolation: torIsolation,
	}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}

		// The proxy dialer does not take a context, so abandon the dial
		// and close any late connection when ctx ends first.
		done := make(chan dialResult, 1)
		go func() {
			conn, err := proxy.Dial(network, addr)
			done <- dialResult{conn, err}
		}()

		select {
		case r := <-done:
			return r.conn, r.err
		case <-ctx.Done():
			go func() {
				if r := <-done; r.conn != nil {
					r.conn.Close()
				}
			}()
			return nil, ctx.Err()
		}
	}
}

// remoteAddr returns the address of the peer behind conn.  Connections made
// through a proxy report the proxied destination.
func remoteAddr(conn net.Conn) string {
	addr := conn.RemoteAddr()
	if addr == nil {
		return ""
	}

	// addr will be a socks.ProxiedAddr when using a proxy.
	if proxiedAddr, ok := addr.(*socks.ProxiedAddr); ok {
		return net.JoinHostPort(proxiedAddr.Host,
			strconv.Itoa(proxiedAddr.Port))
	}
	return addr.String()
}
