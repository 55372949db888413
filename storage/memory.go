package storage

import (
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/xordata/cidutil"
)

// MemoryStore is an in-process chunk store. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks map[cid.Cid][]byte
}

var _ ChunkStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chunks: make(map[cid.Cid][]byte)}
}

func (m *MemoryStore) Put(bytes []byte) (cid.Cid, error) {
	id, err := cidutil.ChunkCID(bytes)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, ErrInvalidCID
	}
	owned := make([]byte, len(bytes))
	copy(owned, bytes)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks[id] = owned
	return id, nil
}

func (m *MemoryStore) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	b, ok := m.chunks[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryStore) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	_, ok := m.chunks[id]
	m.mu.RUnlock()
	return ok
}

// Len reports the number of stored chunks.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}
