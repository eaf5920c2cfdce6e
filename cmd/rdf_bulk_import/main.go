// A client utility for loading a dataset into the sharding proxy (or
// directly into a single backend) and for querying statements back
// out, grounded on the original Marmotta project's MarmottaClient
// command line tool. The proxy treats this utility as just another
// client; it carries no shard-aware logic of its own.
package main

import (
	"context"
	"log"
	"os"

	"github.com/marmotta/rdf-sharding-proxy/pkg/bulkimport"
	"github.com/marmotta/rdf-sharding-proxy/pkg/program"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

func main() {
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		if len(os.Args) != 3 {
			return status.Error(codes.InvalidArgument, "Usage: rdf_bulk_import (import|query) server_address")
		}
		command, address := os.Args[1], os.Args[2]

		cc, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return status.Errorf(codes.Unavailable, "Failed to dial %s: %s", address, err)
		}
		client := service.NewSailServiceClient(cc)

		switch command {
		case "import":
			namespaces, statements, err := bulkimport.ImportDataset(ctx, client, os.Stdin)
			if err != nil {
				return err
			}
			log.Printf("Imported %d namespaces and %d statements", namespaces, statements)
			return nil
		case "query":
			count, err := bulkimport.QueryDataset(ctx, client, &rdf.Statement{}, os.Stdout)
			if err != nil {
				return err
			}
			log.Printf("Retrieved %d statements", count)
			return nil
		default:
			return status.Errorf(codes.InvalidArgument, "Unknown command %q, expected import or query", command)
		}
	})
}
