package storage

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/xordata/blob"
	"xdao.co/xordata/xorname"
)

// Vault is the typed blob layer over a chunk store: blobs go in and out as
// canonical bytes, and every retrieval is verified against the address the
// caller asked for before being returned.
type Vault struct {
	store ChunkStore
	index map[xorname.Name]cid.Cid
}

// NewVault wraps a chunk store.
func NewVault(store ChunkStore) *Vault {
	return &Vault{
		store: store,
		index: make(map[xorname.Name]cid.Cid),
	}
}

// PutBlob stores a blob and returns the chunk CID it is kept under.
func (v *Vault) PutBlob(b blob.Blob) (cid.Cid, error) {
	id, err := v.store.Put(b.CanonicalBytes())
	if err != nil {
		return cid.Undef, err
	}
	v.index[b.Name()] = id
	return id, nil
}

// GetBlob fetches and verifies the blob at an address.
func (v *Vault) GetBlob(addr blob.Address) (blob.Blob, error) {
	id, ok := v.index[addr.Name()]
	if !ok {
		return nil, ErrNotFound
	}
	raw, err := v.store.Get(id)
	if err != nil {
		return nil, err
	}
	b, err := blob.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("storage: stored chunk is not a blob: %w", err)
	}
	if err := blob.Verify(b, addr); err != nil {
		return nil, err
	}
	return b, nil
}

// HasBlob reports whether a blob is stored at an address.
func (v *Vault) HasBlob(addr blob.Address) bool {
	id, ok := v.index[addr.Name()]
	return ok && v.store.Has(id)
}
