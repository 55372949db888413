package cidutil

import (
	"testing"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

func TestChunkCIDDeterministic(t *testing.T) {
	a, err := ChunkCID([]byte("payload"))
	if err != nil {
		t.Fatalf("ChunkCID: %v", err)
	}
	b, err := ChunkCID([]byte("payload"))
	if err != nil {
		t.Fatalf("ChunkCID: %v", err)
	}
	if a != b {
		t.Fatalf("same bytes produced different CIDs: %s vs %s", a, b)
	}

	c, err := ChunkCID([]byte("other payload"))
	if err != nil {
		t.Fatalf("ChunkCID: %v", err)
	}
	if a == c {
		t.Fatalf("different bytes produced the same CID")
	}
}

func TestChunkCIDShape(t *testing.T) {
	id, err := ChunkCID([]byte("shape check"))
	if err != nil {
		t.Fatalf("ChunkCID: %v", err)
	}
	if id.Version() != 1 {
		t.Fatalf("version = %d, want 1", id.Version())
	}
	if id.Type() != cid.Raw {
		t.Fatalf("codec = %d, want raw", id.Type())
	}
	decoded, err := mh.Decode(id.Hash())
	if err != nil {
		t.Fatalf("decode multihash: %v", err)
	}
	if decoded.Code != mh.SHA2_256 {
		t.Fatalf("hash code = %d, want sha2-256", decoded.Code)
	}
}
