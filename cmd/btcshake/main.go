// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/btcsuite/btcshake/chaincfg"
	"github.com/btcsuite/btcshake/handshake"
	"github.com/btcsuite/btcshake/wire"
	flags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
)

// resolveEndpoints returns the endpoints to handshake with: the --connect
// peers when given, otherwise the addresses announced by the DNS seeds.
func resolveEndpoints(ctx context.Context, cfg *config,
	lookup handshake.LookupFunc) ([]*net.TCPAddr, error) {

	var endpoints []*net.TCPAddr
	if len(cfg.ConnectPeers) > 0 {
		for _, addr := range cfg.ConnectPeers {
			host, portStr, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			port, err := strconv.ParseUint(portStr, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid port in %s: %v",
					addr, err)
			}
			eps, err := handshake.Resolve(ctx, lookup, host,
				uint16(port))
			if err != nil {
				return nil, fmt.Errorf("unable to resolve %s: %v",
					host, err)
			}
			endpoints = append(endpoints, eps...)
		}
	} else {
		params := *cfg.params
		if len(cfg.Seeds) > 0 {
			params.DNSSeeds = params.DNSSeeds[:0:0]
			for _, seed := range cfg.Seeds {
				params.DNSSeeds = append(params.DNSSeeds,
					chaincfg.DNSSeed{Host: seed})
			}
		}
		eps, err := handshake.ResolveSeeds(ctx, &params, lookup)
		if err != nil {
			return nil, err
		}
		endpoints = eps
	}

	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints found for %s",
			cfg.params.Name)
	}
	if len(endpoints) > cfg.MaxEndpoints {
		endpoints = endpoints[:cfg.MaxEndpoints]
	}
	return endpoints, nil
}

// printResult writes the outcome of one handshake to w.
func printResult(w io.Writer, res *handshake.Result) {
	if res.Err != nil {
		fmt.Fprintf(w, "%-24s failed after %v: %v\n", res.Endpoint,
			res.Elapsed.Round(time.Millisecond), res.Err)
		return
	}

	summary := fmt.Sprintf("%v (%d bytes)", res.Header.Command(),
		len(res.Payload))
	if res.Header.Command() == wire.CmdVersion {
		if nonce, ok := wire.PeekVersionNonce(res.Payload); ok {
			summary += fmt.Sprintf(" nonce %d", nonce)
		}
	}
	fmt.Fprintf(w, "%-24s answered in %v: %s\n", res.Endpoint,
		res.Elapsed.Round(time.Millisecond), summary)
}

// btcshakeMain is the real main function for btcshake.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func btcshakeMain() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if !cfg.NoFileLogging {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			return err
		}
		defer logRotator.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	endpoints, err := resolveEndpoints(ctx, cfg, handshake.DefaultLookup)
	if err != nil {
		mainLog.Errorf("%v", err)
		return err
	}
	mainLog.Infof("Handshaking with %d endpoints on %s", len(endpoints),
		cfg.params.Name)

	registry := prometheus.NewRegistry()
	hcfg := handshake.Config{
		Net:              cfg.params.Net,
		NegotiateTimeout: cfg.Timeout,
		Metrics:          handshake.NewMetrics("btcshake", registry),
	}
	if cfg.Proxy != "" {
		hcfg.Dial = handshake.ProxyDial(cfg.Proxy, cfg.ProxyUser,
			cfg.ProxyPass, cfg.TorIsolation)
	}

	h := handshake.New(&hcfg)
	for res := range h.Start(ctx, endpoints) {
		printResult(os.Stdout, &res)
	}

	if cfg.MetricsFile != "" {
		err := prometheus.WriteToTextfile(cfg.MetricsFile, registry)
		if err != nil {
			mainLog.Errorf("Unable to write metrics: %v", err)
		}
	}
	return nil
}

func main() {
	if err := btcshakeMain(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
