// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package proxy

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/relaygate/relaygate/internal/config"
	"github.com/relaygate/relaygate/internal/logging"
	"github.com/relaygate/relaygate/internal/metrics"
	"github.com/relaygate/relaygate/internal/rules"
)

// Worker is the suture.Service for a single configured service: it owns
// the service's listener, the receiving end of its update channel, and
// its rule snapshot. It implements suture.Service (Serve(ctx) error) and
// fmt.Stringer, though it depends on neither package directly.
type Worker struct {
	cfg      config.ServiceConfig
	updates  <-chan rules.UpdateMessage
	snapshot *Snapshot

	ready chan net.Addr // signaled once Serve's listener is bound; buffered, written at most once
}

// NewWorker builds a Worker for cfg, draining rule updates from updates.
func NewWorker(cfg config.ServiceConfig, updates <-chan rules.UpdateMessage) *Worker {
	return &Worker{cfg: cfg, updates: updates, snapshot: NewSnapshot(), ready: make(chan net.Addr, 1)}
}

// Ready returns the address the worker bound once Serve's listener comes
// up, primarily useful in tests that configure cfg.From as "host:0" and
// need the OS-assigned port.
func (w *Worker) Ready() <-chan net.Addr {
	return w.ready
}

// Serve implements suture.Service. It accepts connections on cfg.From until
// ctx is canceled or the listener fails; each accepted connection is
// drained against queued updates, handed an immutable snapshot copy, and
// relayed in its own goroutine.
func (w *Worker) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", w.cfg.From)
	if err != nil {
		return fmt.Errorf("listen on %s for service %q: %w", w.cfg.From, w.cfg.ServiceName, err)
	}
	defer ln.Close()
	select {
	case w.ready <- ln.Addr():
	default:
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("accept on service %q: %w", w.cfg.ServiceName, err)
		}

		w.drain()
		snap := w.snapshot.Clone()

		metrics.RecordConnectionAccepted(w.cfg.ServiceName)
		go w.handle(ctx, conn, snap)
	}
}

// drain non-blockingly applies every update message currently queued,
// stopping as soon as the channel has nothing left to offer.
func (w *Worker) drain() {
	for {
		select {
		case msg := <-w.updates:
			w.snapshot.Apply(msg)
		default:
			metrics.SetRulesActive(w.cfg.ServiceName, w.snapshot.Len())
			return
		}
	}
}

// handle dials the upstream, pairs two Relay goroutines sharing a single
// cancellation context, and waits for both to finish. Upstream dial
// failures and relay I/O errors are logged and isolated to this
// connection; they never propagate to Serve.
func (w *Worker) handle(parent context.Context, client net.Conn, snap *Snapshot) {
	start := time.Now()
	defer func() {
		metrics.RecordConnectionClosed(w.cfg.ServiceName, time.Since(start))
	}()
	defer client.Close()

	upstream, err := net.Dial("tcp", w.cfg.To)
	if err != nil {
		metrics.RecordUpstreamDialError(w.cfg.ServiceName)
		logging.Warn().
			Str("service", w.cfg.ServiceName).
			Str("upstream", w.cfg.To).
			Err(err).
			Msg("upstream dial failed")
		return
	}
	defer upstream.Close()

	connCtx, cancel := context.WithCancel(parent)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if _, err := Relay(connCtx, cancel, upstream, client, w.cfg.ServiceName, DirectionUpstreamToClient, nil); err != nil {
			logging.Debug().Str("service", w.cfg.ServiceName).Err(err).Msg("upstream-to-client relay ended")
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := Relay(connCtx, cancel, client, upstream, w.cfg.ServiceName, DirectionClientToUpstream, snap); err != nil {
			logging.Debug().Str("service", w.cfg.ServiceName).Err(err).Msg("client-to-upstream relay ended")
		}
	}()

	wg.Wait()
}

// String implements fmt.Stringer for suture's log messages.
func (w *Worker) String() string {
	return "proxy-worker:" + w.cfg.ServiceName
}
