// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package proxy

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/relaygate/relaygate/internal/logging"
	"github.com/relaygate/relaygate/internal/metrics"
)

// ChunkSize is the fixed read/write chunk used by Relay. Screening never
// looks across chunk boundaries: a pattern split between two reads is not
// detected, a documented limitation rather than a bug.
const ChunkSize = 1024

// Direction labels for the proxy_bytes_relayed_total metric.
const (
	DirectionClientToUpstream = "client_to_upstream"
	DirectionUpstreamToClient = "upstream_to_client"
)

// Relay copies bytes from src to dst in ChunkSize chunks until EOF,
// cancellation, or a screened drop, and returns the number of bytes
// forwarded to dst.
//
// ctx and cancel must be shared between the two halves of one connection's
// duplex pair. Relay always calls cancel before returning (via defer), so
// whichever half finishes first — by EOF, screened drop, or error — wakes
// the other half, which is blocked in Read on the same shared ctx and
// reacts by closing both of its own sockets.
//
// screen is non-nil only for the client-to-upstream direction. When a
// chunk contains an active rule's pattern, that chunk is discarded (never
// written to dst) and Relay returns cleanly: this is the screened drop.
func Relay(ctx context.Context, cancel context.CancelFunc, src, dst net.Conn, service, direction string, screen *Snapshot) (int64, error) {
	defer cancel()

	stop := context.AfterFunc(ctx, func() {
		_ = src.Close()
		_ = dst.Close()
	})
	defer stop()

	buf := make([]byte, ChunkSize)
	var total int64

	for {
		n, err := src.Read(buf)
		if err != nil {
			if isCleanClose(err) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		chunk := buf[:n]

		if screen != nil {
			if ruleID, dropped := screen.Match(chunk); dropped {
				logging.Info().
					Str("service", service).
					Int64("rule_id", ruleID).
					Int("chunk_len", n).
					Msg("screened drop")
				metrics.RecordScreenedDrop(service)
				return total, nil
			}
		}

		if _, err := dst.Write(chunk); err != nil {
			return total, err
		}
		total += int64(n)
		metrics.RecordBytesRelayed(service, direction, n)
	}
}

// isCleanClose reports whether err represents a benign connection
// termination that Relay should treat as EOF rather than a failure:
// io.EOF, a read on an already-closed socket (the cancellation watcher
// raced the natural EOF), or a peer reset/abort.
func isCleanClose(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNABORTED)
}
