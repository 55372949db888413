package localfs

import (
	"os"
	"testing"

	"xdao.co/xordata/cidutil"
	"xdao.co/xordata/storage"
	"xdao.co/xordata/storage/testkit"
)

func TestLocalFS_Conformance(t *testing.T) {
	testkit.RunChunkStoreConformance(t, func(t *testing.T) storage.ChunkStore {
		t.Helper()
		dir := t.TempDir()
		store, err := New(dir)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		return store
	})
}

func TestLocalFS_RejectMutationByOverwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	orig := []byte("original")
	id, err := store.Put(orig)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Corrupt the stored chunk out-of-band.
	path := store.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("corrupted"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Get must detect hash mismatch.
	if _, err := store.Get(id); err != storage.ErrCIDMismatch {
		t.Fatalf("Get mismatch: got %v want %v", err, storage.ErrCIDMismatch)
	}

	// Put must not "repair" or overwrite the corrupted chunk.
	if _, err := store.Put(orig); err != storage.ErrImmutable {
		t.Fatalf("Put after corruption: got %v want %v", err, storage.ErrImmutable)
	}

	// Sanity: the CID is still the CID of the original bytes.
	wantID, err := cidutil.ChunkCID(orig)
	if err != nil {
		t.Fatalf("ChunkCID failed: %v", err)
	}
	if id != wantID {
		t.Fatalf("unexpected CID: got %s want %s", id, wantID)
	}
}
