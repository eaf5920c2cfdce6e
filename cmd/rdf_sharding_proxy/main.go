// rdf_sharding_proxy dispatches SailService RPCs across a fixed set of
// backend shards (spec §2-§7). It can be started either from a Jsonnet
// configuration file, or, for quick manual testing, by repeating a
// -shard flag once per backend address.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	proxygrpc "github.com/marmotta/rdf-sharding-proxy/pkg/grpc"
	"github.com/marmotta/rdf-sharding-proxy/pkg/program"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/configuration"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/shardclient"
	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	var configPath string
	var shards util.StringList
	flag.StringVar(&configPath, "config", "", "Path to an rdf_sharding_proxy.jsonnet configuration file")
	flag.Var(&shards, "shard", "Backend shard address (repeatable); used instead of -config")
	var listenAddress string
	flag.StringVar(&listenAddress, "listen", ":10000", "Address the proxy listens on when started via -shard")
	var httpListenAddress string
	flag.StringVar(&httpListenAddress, "http-listen", "", "Address to serve Prometheus metrics on (empty disables it)")
	flag.Parse()

	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		config := configuration.ApplicationConfiguration{
			ListenAddress:     listenAddress,
			Shards:            shards,
			HTTPListenAddress: httpListenAddress,
		}
		if configPath != "" {
			config = configuration.ApplicationConfiguration{}
			if err := util.UnmarshalConfigurationFromFile(configPath, &config); err != nil {
				return util.StatusWrapf(err, "Failed to read configuration from %s", configPath)
			}
		}
		if len(config.Shards) == 0 {
			return status.Error(codes.InvalidArgument, "No shards configured: provide -config or one or more -shard flags")
		}

		shardFactory := shardclient.NewFactory(config.Shards, proxygrpc.BaseClientFactory)
		routingService := sharding.NewRoutingService(shardFactory, util.DefaultErrorLogger, util.UUIDGenerator(uuid.NewRandom))

		server, lis, err := proxygrpc.NewServer(config.ListenAddress)
		if err != nil {
			return util.StatusWrapf(err, "Failed to listen on %s", config.ListenAddress)
		}
		service.RegisterSailServiceServer(server, routingService)

		if config.HTTPListenAddress != "" {
			dependenciesGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				httpServer := &http.Server{Addr: config.HTTPListenAddress, Handler: mux}
				go func() {
					<-ctx.Done()
					httpServer.Close()
				}()
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return util.StatusWrap(err, "Prometheus HTTP server failed")
				}
				return nil
			})
		}

		siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
			go func() {
				<-ctx.Done()
				server.GracefulStop()
			}()
			log.Printf("Listening on %s, dispatching to %d shard(s)", config.ListenAddress, len(config.Shards))
			if err := server.Serve(lis); err != nil {
				return util.StatusWrap(err, "gRPC server failed")
			}
			return nil
		})
		return nil
	})
}
