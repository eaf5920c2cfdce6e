package writefanout_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/writefanout"

	"github.com/stretchr/testify/require"
)

// fakeUpload records every record sent to it and replays a canned
// terminal reply (or error) on CloseAndRecv.
type fakeUpload struct {
	sent      []string
	closed    bool
	sendErr   error
	closeErr  error
	closeResp int64
}

func (u *fakeUpload) Send(r string) error {
	if u.sendErr != nil {
		return u.sendErr
	}
	u.sent = append(u.sent, r)
	return nil
}

func (u *fakeUpload) CloseAndRecv() (int64, error) {
	u.closed = true
	if u.closeErr != nil {
		return 0, u.closeErr
	}
	return u.closeResp, nil
}

func feeder(records []string) writefanout.Next[string] {
	i := 0
	return func() (string, bool, error) {
		if i >= len(records) {
			return "", false, nil
		}
		r := records[i]
		i++
		return r, true, nil
	}
}

func sumCombine(acc *int64, shard int, reply int64) {
	*acc += reply
}

func TestRunBroadcastsToEveryShard(t *testing.T) {
	// Spec §8 invariant 2: every broadcast record is written exactly
	// once to every shard.
	uploads := []*fakeUpload{{closeResp: 1}, {closeResp: 1}, {closeResp: 1}}
	records := []string{"ns1", "ns2"}

	aggregate, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		len(uploads),
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			return uploads[shard], nil
		},
		feeder(records),
		func(string) int { return -1 },
		sumCombine,
	)

	require.NoError(t, clientErr)
	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int64(3), aggregate)
	for _, u := range uploads {
		require.Equal(t, records, u.sent)
		require.True(t, u.closed)
	}
}

func TestRunRoutesEachRecordToExactlyOneShard(t *testing.T) {
	// Spec §8 invariant 3: no duplication of routed records.
	uploads := []*fakeUpload{{closeResp: 0}, {closeResp: 0}}
	records := []string{"s:0", "s:1", "s:0", "s:1", "s:0"}

	route := func(r string) int {
		switch r {
		case "s:0":
			return 0
		default:
			return 1
		}
	}

	_, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		len(uploads),
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			return uploads[shard], nil
		},
		feeder(records),
		route,
		sumCombine,
	)

	require.NoError(t, clientErr)
	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, []string{"s:0", "s:0", "s:0"}, uploads[0].sent)
	require.Equal(t, []string{"s:1", "s:1"}, uploads[1].sent)
}

func TestRunEmptyStreamStillClosesEveryShard(t *testing.T) {
	// Spec §4.2 edge case: an empty inbound stream still opens and
	// closes all shard streams.
	uploads := []*fakeUpload{{}, {}}
	_, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		len(uploads),
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			return uploads[shard], nil
		},
		feeder(nil),
		func(string) int { return -1 },
		sumCombine,
	)
	require.NoError(t, clientErr)
	for _, err := range errs {
		require.NoError(t, err)
	}
	for _, u := range uploads {
		require.True(t, u.closed)
		require.Empty(t, u.sent)
	}
}

func TestRunUnrecognizedRouteIsDropped(t *testing.T) {
	uploads := []*fakeUpload{{}, {}}
	_, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		len(uploads),
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			return uploads[shard], nil
		},
		feeder([]string{"garbage"}),
		func(string) int { return len(uploads) }, // out of range: dropped
		sumCombine,
	)
	require.NoError(t, clientErr)
	for _, err := range errs {
		require.NoError(t, err)
	}
	for _, u := range uploads {
		require.Empty(t, u.sent)
	}
}

func TestRunSendFailureSuppressesSubsequentWritesToThatShard(t *testing.T) {
	failing := &fakeUpload{sendErr: errors.New("broken pipe")}
	healthy := &fakeUpload{closeResp: 2}
	uploads := []*fakeUpload{failing, healthy}

	_, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		len(uploads),
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			return uploads[shard], nil
		},
		feeder([]string{"a", "b"}),
		func(string) int { return -1 }, // broadcast
		sumCombine,
	)

	require.Error(t, errs[0])
	require.NoError(t, errs[1])
	require.Empty(t, failing.sent)
	// failing shard's upload is never finalized since it already errored.
	require.False(t, failing.closed)
	require.True(t, healthy.closed)
	_ = clientErr
}

func TestRunOpenFailureIsReportedPerShard(t *testing.T) {
	openErr := errors.New("connect refused")
	healthy := &fakeUpload{closeResp: 4}

	aggregate, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		2,
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			if shard == 0 {
				return nil, openErr
			}
			return healthy, nil
		},
		feeder(nil),
		func(string) int { return -1 },
		sumCombine,
	)

	require.NoError(t, clientErr)
	require.Error(t, errs[0])
	require.NoError(t, errs[1])
	require.Equal(t, int64(4), aggregate)
}

func TestRunClientStreamFailureStillFinalizesEveryShard(t *testing.T) {
	// Spec §7: client-stream failure must still close the shard
	// upload halves cleanly.
	uploads := []*fakeUpload{{closeResp: 1}, {closeResp: 1}}
	next := func() (string, bool, error) {
		return "", false, io.ErrUnexpectedEOF
	}

	_, errs, clientErr := writefanout.Run[string, int64](
		context.Background(),
		len(uploads),
		func(ctx context.Context, shard int) (writefanout.Upload[string, int64], error) {
			return uploads[shard], nil
		},
		next,
		func(string) int { return -1 },
		sumCombine,
	)

	require.ErrorIs(t, clientErr, io.ErrUnexpectedEOF)
	for _, err := range errs {
		require.NoError(t, err)
	}
	for _, u := range uploads {
		require.True(t, u.closed)
	}
}
