// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handshake

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/btcsuite/btcshake/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/lru"
)

// Result is the outcome of the handshake with one endpoint.
type Result struct {
	// Endpoint is the address the handshake was attempted against.
	Endpoint *net.TCPAddr

	// RemoteAddr is the address reported by the connection, which is the
	// proxied destination when dialing through a proxy.
	RemoteAddr string

	// Header and Payload hold the first response frame.  They are nil when
	// Err is set.
	Header  *wire.MessageHeader
	Payload []byte

	// Version holds the decoded response when it is a version message
	// in the fixed layout produced by this package.
	Version *wire.MsgVersion

	// Elapsed is the time spent on the handshake.
	Elapsed time.Duration

	// Err is the reason the handshake failed, if any.
	Err error
}

// Handshaker performs the initial version exchange with remote endpoints.
type Handshaker struct {
	cfg        Config
	sentNonces lru.Cache
}

// New returns a Handshaker for cfg with unset options filled with defaults.
func New(cfg *Config) *Handshaker {
	h := Handshaker{cfg: *cfg}
	if h.cfg.NegotiateTimeout <= 0 {
		h.cfg.NegotiateTimeout = DefaultNegotiateTimeout
	}
	if h.cfg.Dial == nil {
		h.cfg.Dial = defaultDial
	}
	if h.cfg.Services == 0 {
		h.cfg.Services = wire.SFNodeNetwork
	}
	if h.cfg.SentNonceCacheSize == 0 {
		h.cfg.SentNonceCacheSize = defaultSentNonceCacheSize
	}
	h.sentNonces = lru.NewCache(h.cfg.SentNonceCacheSize)
	return &h
}

// localVersion builds the version message announced to endpoint.  The
// receiver is the endpoint itself and the sender is the unspecified address
// with port zero.
func (h *Handshaker) localVersion(endpoint *net.TCPAddr) (wire.MsgVersion, error) {
	recvIP, err := wire.IPv4Mapped(endpoint.IP)
	if err != nil {
		return wire.MsgVersion{}, err
	}
	fromIP, err := wire.IPv4Mapped(net.IPv4zero)
	if err != nil {
		return wire.MsgVersion{}, err
	}

	b := wire.NewVersionBuilder()
	steps := []func(wire.VersionBuilder) (wire.VersionBuilder, error){
		func(b wire.VersionBuilder) (wire.VersionBuilder, error) {
			return b.WithAddrRecv(recvIP)
		},
		func(b wire.VersionBuilder) (wire.VersionBuilder, error) {
			return b.WithAddrRecvPort(uint16(endpoint.Port))
		},
		func(b wire.VersionBuilder) (wire.VersionBuilder, error) {
			return b.WithAddrFrom(fromIP)
		},
		func(b wire.VersionBuilder) (wire.VersionBuilder, error) {
			return b.WithAddrFromPort(0)
		},
		func(b wire.VersionBuilder) (wire.VersionBuilder, error) {
			return b.WithServices(h.cfg.Services)
		},
		func(b wire.VersionBuilder) (wire.VersionBuilder, error) {
			return b.WithStartHeight(h.cfg.StartHeight)
		},
	}
	for _, step := range steps {
		if b, err = step(b); err != nil {
			return wire.MsgVersion{}, err
		}
	}
	return b.Build(), nil
}

// Negotiate sends a version message to endpoint and reads back the first
// response frame.  Failures are reported in the result rather than returned.
func (h *Handshaker) Negotiate(ctx context.Context, endpoint *net.TCPAddr) (res Result) {
	res.Endpoint = endpoint
	start := time.Now()
	h.cfg.Metrics.recordAttempt()
	defer func() {
		res.Elapsed = time.Since(start)
		h.cfg.Metrics.recordResult(res.Err, res.Elapsed)
		if res.Err != nil {
			log.Debugf("Handshake with %s failed: %v", endpoint, res.Err)
		}
	}()

	msg, err := h.localVersion(endpoint)
	if err != nil {
		res.Err = err
		return res
	}
	payload := msg.BigEndian()

	ctx, cancel := context.WithTimeout(ctx, h.cfg.NegotiateTimeout)
	defer cancel()

	conn, err := h.cfg.Dial(ctx, "tcp", endpoint.String())
	if err != nil {
		res.Err = transportError(ctx, "dial "+endpoint.String(), err)
		return res
	}
	defer conn.Close()
	res.RemoteAddr = remoteAddr(conn)

	// Bound every read and write by the remaining budget and unblock them
	// as soon as ctx is done.
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			res.Err = transportError(ctx, "set deadline", err)
			return res
		}
	}
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	h.sentNonces.Add(msg.Nonce())

	log.Debugf("Sending version (nonce %d) to %s", msg.Nonce(), endpoint)
	log.Tracef("%v", newLogClosure(func() string {
		return spew.Sdump(payload)
	}))

	sent, err := wire.WriteMessage(conn, wire.NewVersionHeader(h.cfg.Net),
		payload)
	h.cfg.Metrics.recordTraffic(sent, 0)
	if err != nil {
		res.Err = transportError(ctx, "write version", err)
		return res
	}

	read, hdr, rpayload, err := wire.ReadMessage(conn, h.cfg.Net)
	h.cfg.Metrics.recordTraffic(0, read)
	if err != nil {
		res.Err = transportError(ctx, "read response", err)
		return res
	}

	log.Debugf("Received %v from %s", hdr, endpoint)
	log.Tracef("%v", newLogClosure(func() string {
		return spew.Sdump(rpayload)
	}))

	if hdr.Command() == wire.CmdVersion {
		nonce, ok := wire.PeekVersionNonce(rpayload)
		if ok && h.sentNonces.Contains(nonce) {
			str := fmt.Sprintf("version from %s echoes our nonce %d",
				endpoint, nonce)
			res.Err = wire.WrapError(wire.ErrSelfConnection, str, nil)
			return res
		}
		if len(rpayload) == wire.VersionPayloadSize {
			var b [wire.VersionPayloadSize]byte
			copy(b[:], rpayload)
			if v, err := wire.MsgVersionFromBigEndian(b); err == nil {
				res.Version = v
			}
		}
	}

	res.Header = hdr
	res.Payload = rpayload
	return res
}

// transportError classifies err.  Codec errors are returned unchanged and
// everything else becomes an ErrTransportFailure, with the context error as
// cause when the handshake was cut short by cancellation or timeout.
func transportError(ctx context.Context, op string, err error) error {
	var werr wire.Error
	if errors.As(err, &werr) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return wire.WrapError(wire.ErrTransportFailure, op,
			fmt.Errorf("%w (%v)", ctxErr, err))
	}
	return wire.WrapError(wire.ErrTransportFailure, op, err)
}
