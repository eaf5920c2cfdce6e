// Package rdf holds the record types exchanged by the sharding proxy
// and its backends. The RDF data model and its wire encoding are out of
// scope of this service (see spec §1); these types are the fixed record
// schema the proxy treats as opaque, except for the canonical encoding
// used for content hashing. The gRPC codec in pkg/proto/service does
// not use that encoding; it gob-encodes these structs.
package rdf

import "strings"

// Namespace is a (prefix, URI) binding. Namespaces are broadcast to
// every shard; they are never routed by hash.
type Namespace struct {
	Prefix string
	URI    string
}

// CanonicalBytes returns a stable byte encoding of the namespace, used
// by content hashing.
func (n Namespace) CanonicalBytes() []byte {
	var b strings.Builder
	b.WriteString(n.Prefix)
	b.WriteByte(0)
	b.WriteString(n.URI)
	return []byte(b.String())
}

// Statement is an RDF quad. The shard a statement lives on is
// determined by hashing all four components together (spec §3).
type Statement struct {
	Subject   string
	Predicate string
	Object    string
	Context   string
}

// CanonicalBytes returns a stable byte encoding of the statement. The
// same encoding must be used on the write path (AddStatements, Update)
// and on the routed-removal path (Update's stmt_removed) so that a
// statement always resolves to the same shard.
func (s Statement) CanonicalBytes() []byte {
	var b strings.Builder
	b.WriteString(s.Subject)
	b.WriteByte(0)
	b.WriteString(s.Predicate)
	b.WriteByte(0)
	b.WriteString(s.Object)
	b.WriteByte(0)
	b.WriteString(s.Context)
	return []byte(b.String())
}

// ContextRequest names a set of graph contexts to operate on. An empty
// set means "all contexts". It is always broadcast, never routed.
type ContextRequest struct {
	Contexts []string
}
