package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"xdao.co/xordata/storage"
	"xdao.co/xordata/storage/grpcstore"
	"xdao.co/xordata/storage/registry"
	"xdao.co/xordata/storage/storeconfig"

	_ "xdao.co/xordata/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("xordata-chunkd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7000", "listen address")
	backend := fs.String("backend", "localfs", "chunk store backend name")
	configPath := fs.String("store-config", "", "JSON store config file (overrides --backend)")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	registry.RegisterFlags(fs, registry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range registry.List(registry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	store, closeFn, err := openStore(*configPath, *backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcstore.RegisterChunkServiceServer(s, grpcstore.NewServer(store))

	fmt.Fprintf(os.Stderr, "xordata-chunkd listening on %s (backend=%s)\n", lis.Addr().String(), *backend)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(configPath, backend string) (storage.ChunkStore, func() error, error) {
	if configPath != "" {
		cfg, err := storeconfig.LoadFile(configPath)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Open(registry.UsageDaemon, "")
	}
	return registry.Open(backend, registry.UsageDaemon)
}
