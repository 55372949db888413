// Package storage holds chunks: immutable byte payloads keyed by the CID of
// their content. Vault nodes keep serialized blobs and sequence snapshots in
// a chunk store; the store never interprets the bytes it holds.
package storage

import "github.com/ipfs/go-cid"

// ChunkStore is the minimal chunk storage interface.
//
// Contract:
// - Put MUST be idempotent.
// - Stored chunks MUST be immutable.
// - CIDs MUST be derived from the bytes written (callers supply canonical bytes).
// - Get MUST return ErrNotFound when the CID is absent.
type ChunkStore interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
