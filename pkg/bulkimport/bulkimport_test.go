package bulkimport_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/marmotta/rdf-sharding-proxy/pkg/bulkimport"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"
	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/service"

	"github.com/stretchr/testify/require"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type unimplementedStream struct{}

func (unimplementedStream) Header() (metadata.MD, error) { return nil, nil }
func (unimplementedStream) Trailer() metadata.MD          { return nil }
func (unimplementedStream) CloseSend() error              { return nil }
func (unimplementedStream) Context() context.Context      { return context.Background() }
func (unimplementedStream) SendMsg(m any) error           { return nil }
func (unimplementedStream) RecvMsg(m any) error           { return nil }
func (unimplementedStream) SetHeader(metadata.MD) error   { return nil }
func (unimplementedStream) SendHeader(metadata.MD) error  { return nil }
func (unimplementedStream) SetTrailer(metadata.MD)        {}

var _ grpc.ClientStream = unimplementedStream{}

type fakeNamespacesUpload struct {
	unimplementedStream
	sent  []*rdf.Namespace
	reply *service.Int64Value
}

func (u *fakeNamespacesUpload) Send(n *rdf.Namespace) error {
	u.sent = append(u.sent, n)
	return nil
}

func (u *fakeNamespacesUpload) CloseAndRecv() (*service.Int64Value, error) {
	return u.reply, nil
}

type fakeStatementsUpload struct {
	unimplementedStream
	sent  []*rdf.Statement
	reply *service.Int64Value
}

func (u *fakeStatementsUpload) Send(s *rdf.Statement) error {
	u.sent = append(u.sent, s)
	return nil
}

func (u *fakeStatementsUpload) CloseAndRecv() (*service.Int64Value, error) {
	return u.reply, nil
}

type fakeGetStatementsClient struct {
	unimplementedStream
	statements []*rdf.Statement
	next       int
}

func (f *fakeGetStatementsClient) Recv() (*rdf.Statement, error) {
	if f.next < len(f.statements) {
		s := f.statements[f.next]
		f.next++
		return s, nil
	}
	return nil, io.EOF
}

type fakeClient struct {
	namespaces *fakeNamespacesUpload
	statements *fakeStatementsUpload
	get        *fakeGetStatementsClient
}

func (c *fakeClient) AddNamespaces(ctx context.Context, opts ...grpc.CallOption) (service.SailService_AddNamespacesClient, error) {
	return c.namespaces, nil
}

func (c *fakeClient) AddStatements(ctx context.Context, opts ...grpc.CallOption) (service.SailService_AddStatementsClient, error) {
	return c.statements, nil
}

func (c *fakeClient) GetStatements(ctx context.Context, in *rdf.Statement, opts ...grpc.CallOption) (service.SailService_GetStatementsClient, error) {
	return c.get, nil
}

func (c *fakeClient) RemoveStatements(ctx context.Context, in *rdf.Statement, opts ...grpc.CallOption) (*service.Int64Value, error) {
	return nil, errors.New("not used by bulkimport")
}

func (c *fakeClient) Update(ctx context.Context, opts ...grpc.CallOption) (service.SailService_UpdateClient, error) {
	return nil, errors.New("not used by bulkimport")
}

func (c *fakeClient) Clear(ctx context.Context, in *rdf.ContextRequest, opts ...grpc.CallOption) (*service.Int64Value, error) {
	return nil, errors.New("not used by bulkimport")
}

func (c *fakeClient) Size(ctx context.Context, in *rdf.ContextRequest, opts ...grpc.CallOption) (*service.Int64Value, error) {
	return nil, errors.New("not used by bulkimport")
}

var _ service.SailServiceClient = (*fakeClient)(nil)

func TestImportDatasetSendsNamespacesAndStatements(t *testing.T) {
	client := &fakeClient{
		namespaces: &fakeNamespacesUpload{reply: &service.Int64Value{Value: 1}},
		statements: &fakeStatementsUpload{reply: &service.Int64Value{Value: 2}},
	}
	in := strings.NewReader(strings.Join([]string{
		"# a comment line, skipped",
		"N\tex\thttp://example.org/",
		"S\thttp://example.org/a\thttp://example.org/p\thttp://example.org/b\thttp://example.org/g",
		"S\thttp://example.org/c\thttp://example.org/p\thttp://example.org/d\thttp://example.org/g",
		"",
	}, "\n"))

	namespaces, statements, err := bulkimport.ImportDataset(context.Background(), client, in)
	require.NoError(t, err)
	require.Equal(t, int64(1), namespaces)
	require.Equal(t, int64(2), statements)
	require.Len(t, client.namespaces.sent, 1)
	require.Len(t, client.statements.sent, 2)
	require.Equal(t, "ex", client.namespaces.sent[0].Prefix)
}

func TestImportDatasetRejectsMalformedLine(t *testing.T) {
	client := &fakeClient{
		namespaces: &fakeNamespacesUpload{reply: &service.Int64Value{}},
		statements: &fakeStatementsUpload{reply: &service.Int64Value{}},
	}
	in := strings.NewReader("S\ttoo\tfew\tfields\n")

	_, _, err := bulkimport.ImportDataset(context.Background(), client, in)
	require.Error(t, err)
}

func TestImportDatasetRejectsUnrecognizedTag(t *testing.T) {
	client := &fakeClient{
		namespaces: &fakeNamespacesUpload{reply: &service.Int64Value{}},
		statements: &fakeStatementsUpload{reply: &service.Int64Value{}},
	}
	in := strings.NewReader("X\tgarbage\n")

	_, _, err := bulkimport.ImportDataset(context.Background(), client, in)
	require.Error(t, err)
}

func TestQueryDatasetWritesOneLinePerStatement(t *testing.T) {
	client := &fakeClient{
		get: &fakeGetStatementsClient{statements: []*rdf.Statement{
			{Subject: "s1", Predicate: "p", Object: "o", Context: "g"},
			{Subject: "s2", Predicate: "p", Object: "o", Context: "g"},
		}},
	}
	var out strings.Builder
	count, err := bulkimport.QueryDataset(context.Background(), client, &rdf.Statement{}, &out)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	require.Equal(t, "S\ts1\tp\to\tg\nS\ts2\tp\to\tg\n", out.String())
}
