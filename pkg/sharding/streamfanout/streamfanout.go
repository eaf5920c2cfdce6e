// Package streamfanout implements spec §4.2's stream fan-out: open a
// server-streaming call on every shard, drain them concurrently, and
// forward every record to a single client-output stream. Used by
// GetStatements.
package streamfanout

import (
	"context"
	"io"
	"sync"

	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"
	"github.com/marmotta/rdf-sharding-proxy/pkg/util"
)

// Open issues the pattern request against shard i and returns a
// receive-only view of its reply stream: Recv returns io.EOF (wrapped
// by the concrete stream type) once the shard has finished.
type Open func(ctx context.Context, shard int) (Receiver, error)

// Receiver is the minimal surface streamfanout needs from a shard's
// GetStatements client stream.
type Receiver interface {
	Recv() (*rdf.Statement, error)
}

// Sink receives the merged output. It is called by at most one
// goroutine at a time; Run enforces the mutual exclusion so sinks
// never need their own locking (spec §5: "client-output stream is a
// shared sink... protected by mutual exclusion").
type Sink func(stmt *rdf.Statement) error

// Run drains shardCount shards concurrently, forwarding every
// statement received to sink under mutual exclusion, and returns once
// every shard stream has closed. A shard that fails to open or that
// errors mid-stream is logged via errLog and skipped; per spec §4.2
// and §9 open question 2, this does not fail the overall call — the
// client still receives every record the surviving shards produced.
//
// Run itself never returns an error for a shard failure, matching the
// "overall status is OK unless a later rule upgrades this" rule of
// §4.2; a sink error (the client-output stream itself failing) is
// returned, since that aborts the merge for every shard.
func Run(ctx context.Context, shardCount int, open Open, sink Sink, errLog util.ErrorLogger) error {
	var mu sync.Mutex
	var sinkErr error
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg.Add(shardCount)
	for i := 0; i < shardCount; i++ {
		shard := i
		go func() {
			defer wg.Done()
			drainShard(ctx, shard, open, sink, errLog, &mu, &sinkErr, cancel)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return sinkErr
}

func drainShard(ctx context.Context, shard int, open Open, sink Sink, errLog util.ErrorLogger, mu *sync.Mutex, sinkErr *error, abort context.CancelFunc) {
	stream, err := open(ctx, shard)
	if err != nil {
		errLog.Log(util.StatusWrapf(err, "Shard %d: failed to open GetStatements stream", shard))
		return
	}
	for {
		stmt, err := stream.Recv()
		if err != nil {
			if err != io.EOF {
				errLog.Log(util.StatusWrapf(err, "Shard %d: GetStatements stream failed", shard))
			}
			return
		}

		mu.Lock()
		if *sinkErr == nil {
			if err := sink(stmt); err != nil {
				*sinkErr = util.StatusWrapf(err, "Failed to write record received from shard %d to client", shard)
				abort()
			}
		}
		done := *sinkErr != nil
		mu.Unlock()
		if done {
			return
		}
	}
}
