// Package scalarfanout implements spec §4.2's scalar fan-out: issue
// the same unary, Int64-replying operation against every shard in
// parallel, sum the successful replies, and report the first failing
// shard's status (by index) if any shard failed. Used by
// RemoveStatements, Clear and Size.
package scalarfanout

import (
	"context"

	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"
	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	"golang.org/x/sync/errgroup"
)

// Call invokes fn against shard i, returning the shard's Int64Value
// reply. Re-architecture guidance §9: a higher-order function over a
// closure stands in for the source's templated method-pointer
// parameterization.
type Call func(ctx context.Context, shard int) (*service.Int64Value, error)

// Run issues call against shardCount shards in parallel, awaits all of
// them, and returns the sum of the successful replies' values. Per
// shard result slots are written by exactly one worker each and summed
// only after every worker has returned (spec §5: "per-worker result
// slots summed after join"), avoiding the source's unsynchronized
// shared-accumulator data race (§9).
//
// If one or more shards fail, Run still returns the sum of the
// successful replies, but also returns a non-nil error: the status of
// the lowest-indexed failing shard, prefixed with "Shard N: " via
// util.StatusWrapf.
func Run(ctx context.Context, shardCount int, call Call) (int64, error) {
	values := make([]int64, shardCount)
	errs := make([]error, shardCount)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < shardCount; i++ {
		shard := i
		group.Go(func() error {
			reply, err := call(groupCtx, shard)
			if err != nil {
				errs[shard] = util.StatusWrapf(service.StatusFromError(err), "Shard %d", shard)
				return nil
			}
			values[shard] = reply.Value
			return nil
		})
	}
	// errgroup.Wait's own error is unused: every worker above
	// recovers its own error into errs so that one shard's failure
	// never cancels the others' in-flight calls via groupCtx before
	// they get a chance to record their own result. Cancellation
	// only happens when the caller's ctx is cancelled.
	_ = group.Wait()

	var sum int64
	for _, v := range values {
		sum += v
	}

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}
	return sum, firstErr
}
