package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// RequireEqualProto asserts that the two passed protocol buffer
// messages are equal.
//
// Because maps in protocol buffers aren't serialized deterministically,
// this function falls back to doing a string comparison upon failure.
func RequireEqualProto(t *testing.T, want, got proto.Message) {
	t.Helper()
	if !proto.Equal(want, got) {
		wantStr := mustMarshalToString(t, want)
		gotStr := mustMarshalToString(t, got)
		if wantStr != gotStr {
			t.Fatalf("Not equal:\nWant:\n\n%s\n\nGot:\n\n%s", wantStr, gotStr)
		}
	}
}

// RequireEqualStatus asserts that two grpc Statuses are equal.
func RequireEqualStatus(t *testing.T, want, got error) {
	t.Helper()
	RequireEqualProto(t, status.Convert(want).Proto(), status.Convert(got).Proto())
}

// RequirePrefixedStatus compares two errors, assumed to be grpc
// Statuses, the same way RequireEqualStatus does, except got may have
// extra trailing characters in its message (used by scalar fan-out
// tests, where the proxy prefixes a shard's status with "Shard N: ").
func RequirePrefixedStatus(t *testing.T, want, got error) {
	t.Helper()
	wantProto := status.Convert(want).Proto()
	gotProto := status.Convert(got).Proto()
	require.Condition(t, func() bool { return strings.HasPrefix(gotProto.GetMessage(), wantProto.GetMessage()) }, "Want message of status\n%v\nto have prefix\n%v", mustMarshalToString(t, gotProto), wantProto.GetMessage())
	gotProto.Message = wantProto.GetMessage()
	RequireEqualProto(t, wantProto, gotProto)
}

func mustMarshalToString(t *testing.T, m proto.Message) string {
	t.Helper()
	s, err := protojson.MarshalOptions{
		Multiline: true,
	}.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	return string(s)
}
