// Package sharding implements spec §4.3: the public SailService server
// surface. RoutingService decides, for every incoming record, whether
// it is broadcast or routed-by-hash, drives the per-shard streams via
// the scalarfanout/streamfanout/writefanout primitives, and reports
// aggregated results.
package sharding

import (
	"context"
	"io"

	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/contenthash"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/scalarfanout"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/shardclient"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/streamfanout"
	"github.com/marmotta/rdf-sharding-proxy/pkg/sharding/writefanout"
	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RoutingService implements service.SailServiceServer by fanning every
// operation out across a fixed set of shards (spec §2, §4.3).
type RoutingService struct {
	shards      shardclient.Factory
	errorLogger util.ErrorLogger
	uuidGen     util.UUIDGenerator
}

var _ service.SailServiceServer = (*RoutingService)(nil)

// NewRoutingService constructs a RoutingService dispatching over the
// shards known to the given Factory.
func NewRoutingService(shards shardclient.Factory, errorLogger util.ErrorLogger, uuidGen util.UUIDGenerator) *RoutingService {
	return &RoutingService{
		shards:      shards,
		errorLogger: errorLogger,
		uuidGen:     uuidGen,
	}
}

func (s *RoutingService) requestID() string {
	if id, err := s.uuidGen(); err == nil {
		return id.String()
	}
	return "unknown"
}

// AddNamespaces broadcasts every inbound namespace to all shards and
// returns shard 0's count, per spec §4.3 ("all shards see identical
// input, so any is representative").
func (s *RoutingService) AddNamespaces(stream service.SailService_AddNamespacesServer) error {
	ctx := stream.Context()
	aggregate, errs, clientErr := writefanout.Run[*rdf.Namespace, *service.Int64Value](
		ctx,
		s.shards.ShardCount(),
		func(ctx context.Context, shard int) (writefanout.Upload[*rdf.Namespace, *service.Int64Value], error) {
			client, err := s.shards.NewShardClient(ctx, shard)
			if err != nil {
				return nil, err
			}
			return client.AddNamespaces(ctx)
		},
		func() (*rdf.Namespace, bool, error) {
			ns, err := stream.Recv()
			if err == io.EOF {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return ns, true, nil
		},
		func(*rdf.Namespace) int { return -1 },
		func(acc **service.Int64Value, shard int, reply *service.Int64Value) {
			if shard == 0 {
				*acc = reply
			}
		},
	)
	if clientErr != nil {
		return util.StatusWrapf(clientErr, "Failed to read inbound namespace stream")
	}
	if err := writefanout.FirstError(errs); err != nil {
		return err
	}
	if aggregate == nil {
		aggregate = &service.Int64Value{}
	}
	return stream.SendAndClose(aggregate)
}

// AddStatements routes each inbound statement by content hash to
// exactly one shard and returns the sum of per-shard counts.
func (s *RoutingService) AddStatements(stream service.SailService_AddStatementsServer) error {
	ctx := stream.Context()
	shardCount := s.shards.ShardCount()
	aggregate, errs, clientErr := writefanout.Run[*rdf.Statement, *service.Int64Value](
		ctx,
		shardCount,
		func(ctx context.Context, shard int) (writefanout.Upload[*rdf.Statement, *service.Int64Value], error) {
			client, err := s.shards.NewShardClient(ctx, shard)
			if err != nil {
				return nil, err
			}
			return client.AddStatements(ctx)
		},
		func() (*rdf.Statement, bool, error) {
			stmt, err := stream.Recv()
			if err == io.EOF {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return stmt, true, nil
		},
		func(stmt *rdf.Statement) int {
			return contenthash.Bucket(contenthash.StatementHash(*stmt), shardCount)
		},
		func(acc **service.Int64Value, shard int, reply *service.Int64Value) {
			if *acc == nil {
				*acc = &service.Int64Value{}
			}
			(*acc).Value += reply.Value
		},
	)
	if clientErr != nil {
		return util.StatusWrapf(clientErr, "Failed to read inbound statement stream")
	}
	if err := writefanout.FirstError(errs); err != nil {
		return err
	}
	if aggregate == nil {
		aggregate = &service.Int64Value{}
	}
	return stream.SendAndClose(aggregate)
}

// GetStatements fans the pattern out to every shard and merges their
// reply streams into the client's output stream (spec §4.2 stream
// fan-out).
func (s *RoutingService) GetStatements(pattern *rdf.Statement, stream service.SailService_GetStatementsServer) error {
	ctx := stream.Context()
	return streamfanout.Run(
		ctx,
		s.shards.ShardCount(),
		func(ctx context.Context, shard int) (streamfanout.Receiver, error) {
			client, err := s.shards.NewShardClient(ctx, shard)
			if err != nil {
				return nil, err
			}
			return client.GetStatements(ctx, pattern)
		},
		func(stmt *rdf.Statement) error {
			return stream.Send(stmt)
		},
		s.errorLogger,
	)
}

// RemoveStatements scalar fans-out the pattern to every shard and sums
// the per-shard removed-statement counts.
func (s *RoutingService) RemoveStatements(ctx context.Context, pattern *rdf.Statement) (*service.Int64Value, error) {
	sum, err := scalarfanout.Run(ctx, s.shards.ShardCount(), func(ctx context.Context, shard int) (*service.Int64Value, error) {
		client, cerr := s.shards.NewShardClient(ctx, shard)
		if cerr != nil {
			return nil, cerr
		}
		return client.RemoveStatements(ctx, pattern)
	})
	return scalarReply(sum, err)
}

// Clear scalar fans-out the context list to every shard and sums the
// per-shard cleared-statement counts.
func (s *RoutingService) Clear(ctx context.Context, contexts *rdf.ContextRequest) (*service.Int64Value, error) {
	sum, err := scalarfanout.Run(ctx, s.shards.ShardCount(), func(ctx context.Context, shard int) (*service.Int64Value, error) {
		client, cerr := s.shards.NewShardClient(ctx, shard)
		if cerr != nil {
			return nil, cerr
		}
		return client.Clear(ctx, contexts)
	})
	return scalarReply(sum, err)
}

// Size scalar fans-out the context list to every shard and sums the
// per-shard sizes.
func (s *RoutingService) Size(ctx context.Context, contexts *rdf.ContextRequest) (*service.Int64Value, error) {
	sum, err := scalarfanout.Run(ctx, s.shards.ShardCount(), func(ctx context.Context, shard int) (*service.Int64Value, error) {
		client, cerr := s.shards.NewShardClient(ctx, shard)
		if cerr != nil {
			return nil, cerr
		}
		return client.Size(ctx, contexts)
	})
	return scalarReply(sum, err)
}

// scalarReply turns a scalar fan-out result into the (value, error)
// pair a unary gRPC handler returns. A standard gRPC unary call cannot
// carry both a response message and a non-nil error on the wire — only
// the error's status reaches the caller — so when sum is only partial
// (err != nil), the partial count is folded into the status message
// itself rather than silently dropped, satisfying spec §7's "non-OK
// with partial count" requirement within that constraint.
func scalarReply(sum int64, err error) (*service.Int64Value, error) {
	if err != nil {
		return nil, util.StatusWrapf(err, "Partial count %d", sum)
	}
	return &service.Int64Value{Value: sum}, nil
}

// Update drives a mixed broadcast/routed stream: namespace records are
// broadcast, statement records are routed by content hash. The two
// statement counters are summed across shards; the two namespace
// counters are taken from shard 0 (see DESIGN.md for the §9 open
// question on namespace-counter policy).
func (s *RoutingService) Update(stream service.SailService_UpdateServer) error {
	ctx := stream.Context()
	shardCount := s.shards.ShardCount()
	requestID := s.requestID()

	aggregate, errs, clientErr := writefanout.Run[*service.UpdateRequest, *service.UpdateResponse](
		ctx,
		shardCount,
		func(ctx context.Context, shard int) (writefanout.Upload[*service.UpdateRequest, *service.UpdateResponse], error) {
			client, err := s.shards.NewShardClient(ctx, shard)
			if err != nil {
				return nil, err
			}
			return client.Update(ctx)
		},
		func() (*service.UpdateRequest, bool, error) {
			req, err := stream.Recv()
			if err == io.EOF {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return req, true, nil
		},
		func(req *service.UpdateRequest) int {
			switch req.Kind {
			case service.UpdateStatementAdded, service.UpdateStatementRemoved:
				return contenthash.Bucket(contenthash.StatementHash(req.Statement), shardCount)
			case service.UpdateNamespaceAdded, service.UpdateNamespaceRemoved:
				return -1
			default:
				// Unrecognized tag: log the record and drop it
				// without failing the call (spec §4.2 edge case).
				// No valid shard index matches, so route every
				// such record here rather than adding a separate
				// drop path in writefanout.
				s.errorLogger.Log(status.Errorf(codes.InvalidArgument, "Update request %s: dropping record with unset kind", requestID))
				return shardCount
			}
		},
		func(acc **service.UpdateResponse, shard int, reply *service.UpdateResponse) {
			if *acc == nil {
				*acc = &service.UpdateResponse{}
			}
			// Statement counters are summed: statements are routed,
			// so each shard's count covers a disjoint subset.
			// Namespace counters are taken from shard 0 only:
			// namespaces are broadcast, so every shard reports the
			// same count and summing would overcount by a factor of
			// N (spec §9 open question 1; DESIGN.md: shard 0,
			// consistent with AddNamespaces).
			(*acc).AddedStatements += reply.AddedStatements
			(*acc).RemovedStatements += reply.RemovedStatements
			if shard == 0 {
				(*acc).AddedNamespaces = reply.AddedNamespaces
				(*acc).RemovedNamespaces = reply.RemovedNamespaces
			}
		},
	)
	if clientErr != nil {
		return util.StatusWrapf(clientErr, "Failed to read inbound update stream")
	}
	if err := writefanout.FirstError(errs); err != nil {
		return err
	}
	if aggregate == nil {
		aggregate = &service.UpdateResponse{}
	}
	return stream.SendAndClose(aggregate)
}
