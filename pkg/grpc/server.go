package grpc

import (
	"net"

	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"

	"google.golang.org/grpc"
)

func init() {
	grpc_prometheus.EnableHandlingTimeHistogram(
		grpc_prometheus.WithHistogramBuckets(
			util.DecimalExponentialBuckets(-3, 6, 2)))
}

// NewServer creates a gRPC server with the same Prometheus timing
// interceptors the teacher installs on every server it runs, and
// starts it listening on listenAddress. It returns once the listener
// is bound; Serve runs until the server is stopped or the listener
// fails.
func NewServer(listenAddress string) (*grpc.Server, net.Listener, error) {
	lis, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return nil, nil, err
	}
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
		grpc.ChainStreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	)
	return server, lis, nil
}
