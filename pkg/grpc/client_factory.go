// Package grpc provides the gRPC client plumbing shared by the proxy's
// shard connections. It mirrors the teacher's ClientFactory /
// BaseClientFactory pair, trimmed of the TLS, OAuth and keepalive
// configuration machinery: the proxy's "Out of scope" section assigns
// TLS credentials to the surrounding process bootstrap, not to this
// core.
package grpc

import (
	"context"

	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func init() {
	// Add Prometheus timing metrics for every shard RPC, the same
	// instrumentation the teacher installs for its own client calls.
	grpc_prometheus.EnableClientHandlingTimeHistogram(
		grpc_prometheus.WithHistogramBuckets(
			util.DecimalExponentialBuckets(-3, 6, 2)))
}

// ClientFactory creates gRPC client connections to a fixed address. It
// backs the shard client factory of spec §4.1.
type ClientFactory interface {
	NewClientConn(ctx context.Context, address string) (grpc.ClientConnInterface, error)
}

type baseClientFactory struct{}

func (baseClientFactory) NewClientConn(ctx context.Context, address string) (grpc.ClientConnInterface, error) {
	return grpc.NewClient(
		address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(grpc_prometheus.UnaryClientInterceptor),
		grpc.WithChainStreamInterceptor(grpc_prometheus.StreamClientInterceptor),
	)
}

// BaseClientFactory dials shard backends directly using grpc-go. It
// connects lazily: grpc.NewClient does not block until the first RPC,
// matching the "returns a handle... or connection error" contract of
// spec §4.1 (a handle can be produced before the backend is reachable;
// the first RPC against it surfaces the connection error).
var BaseClientFactory ClientFactory = baseClientFactory{}
