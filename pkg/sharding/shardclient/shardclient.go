// Package shardclient implements spec §4.1: given a shard index, yield
// a working SailService client bound to that shard's backend address.
package shardclient

import (
	"context"

	proxygrpc "github.com/marmotta/rdf-sharding-proxy/pkg/grpc"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"
)

// Factory creates a SailServiceClient for a given shard index. The
// shard list backing a Factory is immutable for the proxy's lifetime
// (spec §3); index i must always resolve to the same backend.
//
// No caching is mandated by spec §4.1, but an implementation may pool
// connections provided it never shares a handle across two concurrent
// handlers. NewFactory returns one that dials lazily and does not
// pool: one grpc.ClientConnInterface is created per handler
// invocation, mirroring the original Marmotta client's per-call
// makeStub.
type Factory interface {
	// NewShardClient returns a client bound to shard i. A connection
	// error here is treated by the fan-out engine as a failure of
	// that shard for the current request (spec §4.1).
	NewShardClient(ctx context.Context, shard int) (service.SailServiceClient, error)

	// ShardCount returns the number of shards, fixed for the
	// lifetime of the Factory (spec §3).
	ShardCount() int
}

type factory struct {
	addresses     []string
	clientFactory proxygrpc.ClientFactory
}

// NewFactory returns a Factory over the given ordered, immutable list
// of shard backend addresses, dialing connections through cf.
func NewFactory(addresses []string, cf proxygrpc.ClientFactory) Factory {
	return &factory{
		addresses:     addresses,
		clientFactory: cf,
	}
}

// ShardCount returns the number of shards a Factory was constructed
// with.
func (f *factory) ShardCount() int {
	return len(f.addresses)
}

func (f *factory) NewShardClient(ctx context.Context, shard int) (service.SailServiceClient, error) {
	cc, err := f.clientFactory.NewClientConn(ctx, f.addresses[shard])
	if err != nil {
		return nil, err
	}
	return service.NewSailServiceClient(cc), nil
}
