// Package bulkimport implements the bulk-import/query collaborator
// described in spec §6 ("A bulk-import client exists separately... The
// core treats it as just another client") and supplemented from
// _examples/original_source/client/client.cc's MarmottaClient. The
// original opens two concurrent upload streams fed by a parsed RDF
// document and a reader stream drained through a serializer; full RDF
// parsing/serialization is out of scope here (spec §1), so a minimal
// line-oriented record format stands in for both.
package bulkimport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"
	"github.com/marmotta/rdf-sharding-proxy/pkg/util"

	"golang.org/x/sync/errgroup"
)

// Line format: one record per line, tab-separated.
//
//	N	prefix	uri            (namespace)
//	S	subject	predicate	object	context   (statement)
//
// This is deliberately not Turtle/RDF-XML/N-Quads: it exists only to
// exercise the two upload streams end to end without pulling in an RDF
// parser, which spec §1 places out of scope.
const (
	namespaceTag = "N"
	statementTag = "S"
)

// parseNamespace parses a namespace record line (without its leading
// tag field).
func parseNamespace(fields []string) (rdf.Namespace, error) {
	if len(fields) != 2 {
		return rdf.Namespace{}, fmt.Errorf("namespace record needs 2 fields, got %d", len(fields))
	}
	return rdf.Namespace{Prefix: fields[0], URI: fields[1]}, nil
}

// parseStatement parses a statement record line (without its leading
// tag field).
func parseStatement(fields []string) (rdf.Statement, error) {
	if len(fields) != 4 {
		return rdf.Statement{}, fmt.Errorf("statement record needs 4 fields, got %d", len(fields))
	}
	return rdf.Statement{Subject: fields[0], Predicate: fields[1], Object: fields[2], Context: fields[3]}, nil
}

// ImportDataset reads line-oriented records from in and streams
// namespaces and statements to the proxy over two concurrent upload
// streams, mirroring MarmottaClient::importDataset's two
// simultaneously open ClientWriters. It returns the aggregated
// namespace and statement counts the proxy reports.
func ImportDataset(ctx context.Context, client service.SailServiceClient, in io.Reader) (namespaces, statements int64, err error) {
	nsStream, err := client.AddNamespaces(ctx)
	if err != nil {
		return 0, 0, util.StatusWrapf(err, "Failed to open AddNamespaces stream")
	}
	stmtStream, err := client.AddStatements(ctx)
	if err != nil {
		return 0, 0, util.StatusWrapf(err, "Failed to open AddStatements stream")
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case namespaceTag:
			n, perr := parseNamespace(fields[1:])
			if perr != nil {
				return 0, 0, util.StatusWrapf(perr, "Malformed namespace record %q", line)
			}
			if serr := nsStream.Send(&n); serr != nil {
				return 0, 0, util.StatusWrapf(serr, "Failed to send namespace")
			}
		case statementTag:
			s, perr := parseStatement(fields[1:])
			if perr != nil {
				return 0, 0, util.StatusWrapf(perr, "Malformed statement record %q", line)
			}
			if serr := stmtStream.Send(&s); serr != nil {
				return 0, 0, util.StatusWrapf(serr, "Failed to send statement")
			}
		default:
			return 0, 0, fmt.Errorf("unrecognized record tag %q in line %q", fields[0], line)
		}
	}
	if serr := scanner.Err(); serr != nil {
		return 0, 0, util.StatusWrapf(serr, "Failed to read dataset")
	}

	// Close both upload halves and await their terminal replies in
	// parallel, the same discipline the routing service's own
	// writefanout package uses for its per-shard uploads.
	var nsReply, stmtReply *service.Int64Value
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		r, err := nsStream.CloseAndRecv()
		if err != nil {
			return util.StatusWrapf(err, "Failed to finish AddNamespaces")
		}
		nsReply = r
		return nil
	})
	group.Go(func() error {
		r, err := stmtStream.CloseAndRecv()
		if err != nil {
			return util.StatusWrapf(err, "Failed to finish AddStatements")
		}
		stmtReply = r
		return nil
	})
	if err := group.Wait(); err != nil {
		return 0, 0, err
	}
	return nsReply.Value, stmtReply.Value, nil
}

// QueryDataset issues a GetStatements call with pattern and writes one
// line per returned statement to out, standing in for
// MarmottaClient::queryDataset's serializer.
func QueryDataset(ctx context.Context, client service.SailServiceClient, pattern *rdf.Statement, out io.Writer) (int64, error) {
	stream, err := client.GetStatements(ctx, pattern)
	if err != nil {
		return 0, util.StatusWrapf(err, "Failed to open GetStatements stream")
	}
	var count int64
	w := bufio.NewWriter(out)
	defer w.Flush()
	for {
		stmt, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, util.StatusWrapf(err, "GetStatements stream failed")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", statementTag, stmt.Subject, stmt.Predicate, stmt.Object, stmt.Context); err != nil {
			return count, util.StatusWrapf(err, "Failed to write statement")
		}
		count++
	}
	return count, nil
}
