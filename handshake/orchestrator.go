// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handshake

import (
	"context"
	"net"
	"sync"
)

// Start launches a handshake with every endpoint concurrently and returns a
// channel that delivers one result per endpoint in completion order.  The
// channel is closed once every endpoint produced a result.  A failing
// endpoint never affects the others.
func (h *Handshaker) Start(ctx context.Context, endpoints []*net.TCPAddr) <-chan Result {
	results := make(chan Result, len(endpoints))

	var wg sync.WaitGroup
	wg.Add(len(endpoints))
	for _, endpoint := range endpoints {
		go func(endpoint *net.TCPAddr) {
			defer wg.Done()
			results <- h.Negotiate(ctx, endpoint)
		}(endpoint)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Run performs the handshake with every endpoint and returns the results in
// completion order.
func (h *Handshaker) Run(ctx context.Context, endpoints []*net.TCPAddr) []Result {
	log.Infof("Starting handshake with %d endpoints", len(endpoints))

	results := make([]Result, 0, len(endpoints))
	var failed int
	for res := range h.Start(ctx, endpoints) {
		if res.Err != nil {
			failed++
		}
		results = append(results, res)
	}

	log.Infof("Handshake finished: %d succeeded, %d failed",
		len(results)-failed, failed)
	return results
}
