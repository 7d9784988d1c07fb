// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handshake

import (
	"context"
	"net"
	"strconv"
	"sync"

	"github.com/btcsuite/btcshake/chaincfg"
)

// LookupFunc is the signature of the DNS lookup function.
type LookupFunc func(ctx context.Context, host string) ([]net.IP, error)

// DefaultLookup resolves host with the system resolver.
func DefaultLookup(ctx context.Context, host string) ([]net.IP, error) {
	return net.DefaultResolver.LookupIP(ctx, "ip", host)
}

// Resolve looks up host and returns one endpoint per address found, in the
// order returned by lookupFn with duplicates removed.  A host that is already
// an IP literal is returned without a lookup.
func Resolve(ctx context.Context, lookupFn LookupFunc, host string,
	port uint16) ([]*net.TCPAddr, error) {

	if ip := net.ParseIP(host); ip != nil {
		return []*net.TCPAddr{{IP: ip, Port: int(port)}}, nil
	}

	ips, err := lookupFn(ctx, host)
	if err != nil {
		return nil, err
	}
	return dedupe(ips, port, make(map[string]struct{})), nil
}

// ResolveSeeds walks every DNS seed of chainParams concurrently and returns
// the union of the addresses they announce on the default port of the
// network.  Failed seeds are logged and skipped.
func ResolveSeeds(ctx context.Context, chainParams *chaincfg.Params,
	lookupFn LookupFunc) ([]*net.TCPAddr, error) {

	port, err := strconv.ParseUint(chainParams.DefaultPort, 10, 16)
	if err != nil {
		return nil, err
	}

	results := make([][]net.IP, len(chainParams.DNSSeeds))
	var wg sync.WaitGroup
	for i, seeder := range chainParams.DNSSeeds {
		wg.Add(1)
		go func(i int, seeder chaincfg.DNSSeed) {
			defer wg.Done()

			seedpeers, err := lookupFn(ctx, seeder.Host)
			if err != nil {
				log.Infof("DNS discovery failed on seed %s: %v",
					seeder, err)
				return
			}
			log.Infof("%d addresses found from DNS seed %s",
				len(seedpeers), seeder)
			results[i] = seedpeers
		}(i, seeder)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var endpoints []*net.TCPAddr
	for _, ips := range results {
		endpoints = append(endpoints, dedupe(ips, uint16(port), seen)...)
	}
	return endpoints, nil
}

// dedupe converts ips to endpoints on port, skipping any address already in
// seen.
func dedupe(ips []net.IP, port uint16, seen map[string]struct{}) []*net.TCPAddr {
	endpoints := make([]*net.TCPAddr, 0, len(ips))
	for _, ip := range ips {
		key := ip.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		endpoints = append(endpoints, &net.TCPAddr{IP: ip, Port: int(port)})
	}
	return endpoints
}
