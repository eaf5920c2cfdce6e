package service

import "github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"

// Int64Value is the scalar reply used by AddNamespaces, AddStatements,
// RemoveStatements, Clear and Size (spec §6). It stands in for
// google.protobuf.Int64Value, which the original Marmotta service used
// verbatim.
type Int64Value struct {
	Value int64
}

// UpdateKind identifies which of the four mutation payloads an
// UpdateRequest carries. Exactly one must be set per spec §3.
type UpdateKind int

const (
	// UpdateUnspecified marks a record with no tag set. Spec §4.2
	// treats this as a malformed payload to be dropped silently.
	UpdateUnspecified UpdateKind = iota
	UpdateStatementAdded
	UpdateStatementRemoved
	UpdateNamespaceAdded
	UpdateNamespaceRemoved
)

// UpdateRequest is the tagged union record streamed to Update. Only the
// field matching Kind is meaningful.
type UpdateRequest struct {
	Kind      UpdateKind
	Statement rdf.Statement
	Namespace rdf.Namespace
}

// UpdateResponse carries the four non-negative counters Update
// aggregates across shards (spec §6).
type UpdateResponse struct {
	AddedNamespaces   int64
	RemovedNamespaces int64
	AddedStatements   int64
	RemovedStatements int64
}

// Add merges another response's counters into r.
func (r *UpdateResponse) Add(o UpdateResponse) {
	r.AddedNamespaces += o.AddedNamespaces
	r.RemovedNamespaces += o.RemovedNamespaces
	r.AddedStatements += o.AddedStatements
	r.RemovedStatements += o.RemovedStatements
}
