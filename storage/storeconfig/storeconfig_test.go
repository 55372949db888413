package storeconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"xdao.co/xordata/storage/registry"

	_ "xdao.co/xordata/storage/localfs"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, true},
		{"missing name", Config{Backends: []BackendConfig{{}}}, true},
		{"duplicate id", Config{Backends: []BackendConfig{{Name: "localfs"}, {Name: "localfs"}}}, true},
		{"distinct ids", Config{Backends: []BackendConfig{{Name: "localfs", ID: "a"}, {Name: "localfs", ID: "b"}}}, false},
		{"bad policy", Config{WritePolicy: "quorum", Backends: []BackendConfig{{Name: "localfs"}}}, true},
		{"all policy", Config{WritePolicy: "all", Backends: []BackendConfig{{Name: "localfs"}}}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
	}
}

func TestLoadFileAndOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Backends: []BackendConfig{{
		Name:   "localfs",
		Config: map[string]string{"localfs-dir": filepath.Join(dir, "chunks")},
	}}}
	b, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(dir, "store.json")
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	store, closeFn, err := loaded.Open(registry.UsageCLI, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	payload := []byte("configured store")
	id, err := store.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestOpenPreferredBackendNotFound(t *testing.T) {
	cfg := Config{Backends: []BackendConfig{{
		Name:   "localfs",
		Config: map[string]string{"localfs-dir": t.TempDir()},
	}}}
	if _, _, err := cfg.Open(registry.UsageCLI, "missing"); err == nil {
		t.Fatalf("expected error for unknown preferred backend")
	}
}
