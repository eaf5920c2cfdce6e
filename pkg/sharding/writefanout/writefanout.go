// Package writefanout implements spec §4.2's streaming write fan-out:
// open a client-streaming call on every shard, route or broadcast each
// inbound record, half-close every shard stream once the inbound
// stream ends, and aggregate the per-shard terminal replies. Used by
// AddNamespaces, AddStatements and Update.
package writefanout

import (
	"context"

	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	"golang.org/x/sync/errgroup"
)

// Upload is the minimal surface writefanout needs from a shard's
// client-streaming call, parameterized by the record type R and the
// terminal reply type Reply. Send returning an error marks that shard
// as failed for the remainder of the call (spec §4.2 edge case:
// "subsequent writes to that shard are suppressed").
type Upload[R any, Reply any] interface {
	Send(r R) error
	CloseAndRecv() (Reply, error)
}

// OpenUpload opens shard i's upload stream.
type OpenUpload[R any, Reply any] func(ctx context.Context, shard int) (Upload[R, Reply], error)

// shardState tracks one shard's upload for the lifetime of a Run call.
type shardState[R any, Reply any] struct {
	upload Upload[R, Reply]
	// openErr or sendErr, once set, suppress further writes to this
	// shard (spec §4.2 edge case) but do not stop the other shards.
	err error
}

// Next produces the next record from the inbound client stream. It
// returns ok=false once the stream is exhausted; err is set only on a
// genuine client-stream failure (spec §7's "client-stream failure"),
// never on ordinary end-of-stream.
type Next[R any] func() (record R, ok bool, err error)

// Run drives shardCount per-shard upload streams against the sequence
// of records produced by next, routes each record with route,
// half-closes every shard once next is exhausted, and folds every
// shard's terminal reply into an aggregate via combine. It returns the
// aggregate, one error slot per shard (nil where that shard
// succeeded), and the client-stream error next reported, if any — per
// spec §7, a client-stream failure still requires every shard upload
// to be finalized cleanly before Run returns.
//
// route receives a record and returns either a single shard index (for
// a routed record) or a negative index to mean "broadcast to every
// shard". Shards whose upload failed to open, or whose Send returned
// an error earlier in the call, are skipped for the remainder of the
// records and contribute no reply to combine; their absence is
// reported back to the caller via the returned per-shard errors slice,
// indexed by shard, so the routing service can decide how to surface
// them (spec §7: "first failing shard's status").
func Run[R any, Reply any](
	ctx context.Context,
	shardCount int,
	open OpenUpload[R, Reply],
	next Next[R],
	route func(r R) int,
	combine func(acc *Reply, shard int, reply Reply),
) (Reply, []error, error) {
	var aggregate Reply
	shards := make([]shardState[R, Reply], shardCount)
	for i := range shards {
		upload, err := open(ctx, i)
		shards[i].upload = upload
		shards[i].err = err
	}

	var clientErr error
	for {
		record, ok, err := next()
		if !ok {
			// Client-stream failure: still finalize every shard
			// upload cleanly below (spec §7).
			clientErr = err
			break
		}
		target := route(record)
		if target < 0 {
			for i := range shards {
				sendTo(&shards[i], i, record)
			}
		} else if target < shardCount {
			sendTo(&shards[target], target, record)
		}
		// A route result outside [0, shardCount) means the record
		// was silently dropped (spec §4.2 edge case: unrecognized
		// tag / malformed payload).
	}

	// Awaiting each shard's terminal response is the call's main
	// blocking point (spec §5); do it for every still-healthy shard
	// in parallel rather than one at a time, the same discipline the
	// teacher applies to its own backend recombination step.
	errs := make([]error, shardCount)
	replies := make([]Reply, shardCount)
	group, _ := errgroup.WithContext(ctx)
	for i := range shards {
		shard := i
		s := &shards[shard]
		if s.err != nil {
			errs[shard] = util.StatusWrapf(s.err, "Shard %d", shard)
			continue
		}
		group.Go(func() error {
			reply, err := s.upload.CloseAndRecv()
			if err != nil {
				errs[shard] = util.StatusWrapf(err, "Shard %d", shard)
				return nil
			}
			replies[shard] = reply
			return nil
		})
	}
	_ = group.Wait()

	for i, err := range errs {
		if err == nil {
			combine(&aggregate, i, replies[i])
		}
	}
	return aggregate, errs, clientErr
}

func sendTo[R any, Reply any](s *shardState[R, Reply], shard int, record R) {
	if s.err != nil {
		return
	}
	if err := s.upload.Send(record); err != nil {
		s.err = err
	}
}

// FirstError returns the first non-nil error in errs, scanning by
// increasing shard index (spec §7 tie-break: "the error carries the
// first non-OK status by shard index").
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
