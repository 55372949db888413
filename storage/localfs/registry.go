package localfs

import (
	"flag"
	"fmt"

	"xdao.co/xordata/storage"
	"xdao.co/xordata/storage/registry"
)

var (
	flagLocalDir string
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "localfs",
		Description: "Local filesystem chunk store (directory)",
		Usage:       registry.UsageCLI | registry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagLocalDir, "localfs-dir", "", "LocalFS chunk directory (for --backend=localfs)")
		},
		Open: func() (storage.ChunkStore, func() error, error) {
			if flagLocalDir == "" {
				return nil, nil, fmt.Errorf("missing --localfs-dir")
			}
			store, err := New(flagLocalDir)
			return store, nil, err
		},
		OpenConfig: func(cfg map[string]string) (storage.ChunkStore, func() error, error) {
			dir := cfg["localfs-dir"]
			if dir == "" {
				return nil, nil, fmt.Errorf("missing localfs-dir")
			}
			store, err := New(dir)
			return store, nil, err
		},
	})
}
