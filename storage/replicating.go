package storage

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/xordata/cidutil"
)

// NamedStore associates a chunk store with a stable backend name, so
// multi-backend results can be reported per backend.
type NamedStore struct {
	Name  string
	Store ChunkStore
}

// ReplicatingStore mirrors every chunk across a set of named backends.
//
// A write lands on every backend, even when an earlier backend diverges, so
// the healthy replicas stay complete; divergence is then reported as
// ErrCIDMismatch with the full per-backend CID map available via PutAll.
// A read is served by the first replica holding the chunk, skipping replicas
// that are missing it or failing, so one broken backend does not take the
// replica set down.
type ReplicatingStore struct {
	Backends []NamedStore
}

var _ ChunkStore = (*ReplicatingStore)(nil)

// PutAll writes the same bytes to every backend and returns the canonical
// CID (computed locally from the bytes) together with the CID each backend
// reported. When any backend reports a different CID the error is
// ErrCIDMismatch and the map identifies the divergent backends.
func (r ReplicatingStore) PutAll(data []byte) (cid.Cid, map[string]cid.Cid, error) {
	if len(r.Backends) == 0 {
		return cid.Undef, nil, fmt.Errorf("storage: ReplicatingStore has no backends")
	}
	want, err := cidutil.ChunkCID(data)
	if err != nil {
		return cid.Undef, nil, err
	}
	if !want.Defined() {
		return cid.Undef, nil, ErrInvalidCID
	}

	reported := make(map[string]cid.Cid, len(r.Backends))
	diverged := false
	for _, b := range r.Backends {
		if b.Store == nil {
			return cid.Undef, reported, fmt.Errorf("storage: nil store for backend %q", b.Name)
		}
		got, err := b.Store.Put(data)
		if err != nil {
			return cid.Undef, reported, fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
		reported[b.Name] = got
		if got != want {
			diverged = true
		}
	}
	if diverged {
		return cid.Undef, reported, ErrCIDMismatch
	}
	return want, reported, nil
}

func (r ReplicatingStore) Put(data []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(data)
	return id, err
}

// Get returns the chunk from the first replica that has it. A replica error
// other than a miss is remembered but does not stop the scan; it surfaces
// only when no replica can serve the chunk.
func (r ReplicatingStore) Get(id cid.Cid) ([]byte, error) {
	var firstErr error
	for _, b := range r.Backends {
		if b.Store == nil {
			continue
		}
		data, err := b.Store.Get(id)
		switch {
		case err == nil:
			return data, nil
		case IsNotFound(err):
		case firstErr == nil:
			firstErr = fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNotFound
}

func (r ReplicatingStore) Has(id cid.Cid) bool {
	for _, b := range r.Backends {
		if b.Store != nil && b.Store.Has(id) {
			return true
		}
	}
	return false
}
