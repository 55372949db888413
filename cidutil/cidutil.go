// Package cidutil derives the CIDs chunks are keyed by in the storage
// layer. Every chunk CID is a CIDv1 with the "raw" multicodec and a
// sha2-256 multihash, computed over the chunk's canonical bytes.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ChunkCID returns the CID a chunk with these bytes is stored under.
func ChunkCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ChunkCIDString is ChunkCID rendered as a string.
func ChunkCIDString(data []byte) string {
	id, err := ChunkCID(data)
	if err != nil {
		// multihash.Sum with SHA2_256 and default length cannot fail on
		// any input; keep the string form total anyway.
		return ""
	}
	return id.String()
}
