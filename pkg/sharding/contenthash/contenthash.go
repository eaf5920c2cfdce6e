// Package contenthash implements the deterministic content hash
// required by spec §4.4: a 64-bit, non-cryptographic hash over the
// canonical byte encoding of a record, stable across process restarts
// and independent of process-local randomness, used to pick the shard
// a statement is routed to on both the write and routed-removal paths.
package contenthash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"
)

// StatementHash returns the content hash of a statement. It is the
// single source of truth for routing: AddStatements and Update's
// stmt_added/stmt_removed must all call this function to compute the
// bucket a statement belongs to.
func StatementHash(stmt rdf.Statement) uint64 {
	return xxhash.Sum64(stmt.CanonicalBytes())
}

// NamespaceHash returns the content hash of a namespace. Namespaces are
// always broadcast (spec §3), so this is not used for routing; it
// exists so that a namespace can in principle be deduplicated or
// addressed by content the same way a statement can.
func NamespaceHash(ns rdf.Namespace) uint64 {
	return xxhash.Sum64(ns.CanonicalBytes())
}

// Bucket maps a hash to a shard index in [0, shardCount). shardCount
// must be positive.
func Bucket(hash uint64, shardCount int) int {
	return int(hash % uint64(shardCount))
}
