package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-cid"

	"xdao.co/xordata/blob"
	"xdao.co/xordata/cidutil"
	"xdao.co/xordata/identity"
	"xdao.co/xordata/keys"
	"xdao.co/xordata/storage"
	"xdao.co/xordata/storage/registry"
	"xdao.co/xordata/storage/storeconfig"

	_ "xdao.co/xordata/storage/grpcstore"
	_ "xdao.co/xordata/storage/localfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "chunk":
		return cmdChunk(args[1:], out, errOut)
	case "blob":
		return cmdBlob(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "xordata: XOR-addressed data CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xordata key gen [--scheme ed25519|bls] [--secret <passphrase>]")
	fmt.Fprintln(w, "  xordata key inspect <base58-public-key>")
	fmt.Fprintln(w, "  xordata chunk cid <file>")
	fmt.Fprintln(w, "  xordata chunk put [store flags] <file>")
	fmt.Fprintln(w, "  xordata chunk get [store flags] [-o <file>] <cid>")
	fmt.Fprintln(w, "  xordata chunk has [store flags] <cid>")
	fmt.Fprintln(w, "  xordata blob put [store flags] [--owner <base58-public-key>] <file>")
	fmt.Fprintln(w, "  xordata blob get [store flags] [--addr <base58-address>] [-o <file>] <cid>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Store flags:")
	fmt.Fprintln(w, "  --backend <name> selects a chunk store backend (default localfs)")
	fmt.Fprintln(w, "  --store-config <file> opens backends from a JSON config instead")
	fmt.Fprintln(w, "  backend-specific flags (e.g. --localfs-dir, --grpc-target) follow the backend")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --secret derives a deterministic client identity; omit it for a random key")
	fmt.Fprintln(w, "  - blob put with --owner stores a private blob addressed by value and owner")
	fmt.Fprintln(w, "  - blob get writes the blob value to stdout unless -o is given")
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xordata key <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: gen, inspect")
		return 2
	}
	switch args[0] {
	case "gen":
		return cmdKeyGen(args[1:], out, errOut)
	case "inspect":
		return cmdKeyInspect(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return 2
	}
}

func cmdKeyGen(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key gen", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var scheme string
	var secret string
	fs.StringVar(&scheme, "scheme", "ed25519", "Key scheme: ed25519 or bls")
	fs.StringVar(&secret, "secret", "", "Derive the key from a passphrase instead of random bytes (ed25519 only)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var kp keys.Keypair
	switch scheme {
	case "ed25519":
		if secret != "" {
			id, err := identity.ClientFullIDFromSecret([]byte(secret))
			if err != nil {
				fmt.Fprintf(errOut, "derive: %v\n", err)
				return 1
			}
			kp = id.Keypair()
			break
		}
		var err error
		kp, err = keys.NewEd25519Keypair(rand.Reader)
		if err != nil {
			fmt.Fprintf(errOut, "keygen: %v\n", err)
			return 1
		}
	case "bls":
		if secret != "" {
			fmt.Fprintln(errOut, "--secret is only supported with --scheme ed25519")
			return 2
		}
		var err error
		kp, err = keys.NewBLSKeypair(rand.Reader)
		if err != nil {
			fmt.Fprintf(errOut, "keygen: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(errOut, "unknown scheme: %s\n", scheme)
		return 2
	}

	pk := kp.PublicKey()
	fmt.Fprintf(out, "Scheme: %s\n", pk.Scheme())
	fmt.Fprintf(out, "Public-Key: %s\n", pk.EncodeBase58())
	fmt.Fprintf(out, "Name: %s\n", pk.Name().EncodeBase58())
	return 0
}

func cmdKeyInspect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata key inspect <base58-public-key>")
		return 2
	}
	pk, err := keys.DecodePublicKeyBase58(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid public key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Scheme: %s\n", pk.Scheme())
	fmt.Fprintf(out, "Name: %s\n", pk.Name().EncodeBase58())
	return 0
}

func cmdChunk(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xordata chunk <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: cid, put, get, has")
		return 2
	}
	switch args[0] {
	case "cid":
		return cmdChunkCID(args[1:], out, errOut)
	case "put":
		return cmdChunkPut(args[1:], out, errOut)
	case "get":
		return cmdChunkGet(args[1:], out, errOut)
	case "has":
		return cmdChunkHas(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown chunk subcommand: %s\n", args[0])
		return 2
	}
}

func cmdChunkCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("chunk cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata chunk cid <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	id, err := cidutil.ChunkCID(b)
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id)
	return 0
}

// storeFlags is the common backend selection shared by commands that touch a
// chunk store.
type storeFlags struct {
	backend    string
	configPath string
}

func (sf *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&sf.backend, "backend", "localfs", "Chunk store backend name")
	fs.StringVar(&sf.configPath, "store-config", "", "JSON store config file (overrides --backend)")
	registry.RegisterFlags(fs, registry.UsageCLI)
}

func (sf *storeFlags) open() (storage.ChunkStore, func() error, error) {
	if sf.configPath != "" {
		cfg, err := storeconfig.LoadFile(sf.configPath)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Open(registry.UsageCLI, "")
	}
	return registry.Open(sf.backend, registry.UsageCLI)
}

func cmdChunkPut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("chunk put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var sf storeFlags
	sf.register(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata chunk put [store flags] <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}

	store, closeFn, err := sf.open()
	if err != nil {
		fmt.Fprintf(errOut, "open store: %v\n", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	id, err := store.Put(b)
	if err != nil {
		fmt.Fprintf(errOut, "put: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id)
	return 0
}

func cmdChunkGet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("chunk get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var sf storeFlags
	var outPath string
	sf.register(fs)
	fs.StringVar(&outPath, "o", "", "Write chunk bytes to a file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata chunk get [store flags] [-o <file>] <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}

	store, closeFn, err := sf.open()
	if err != nil {
		fmt.Fprintf(errOut, "open store: %v\n", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	b, err := store.Get(id)
	if err != nil {
		fmt.Fprintf(errOut, "get: %v\n", err)
		return 1
	}
	return writeOutput(b, outPath, out, errOut)
}

func cmdChunkHas(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("chunk has", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var sf storeFlags
	sf.register(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata chunk has [store flags] <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}

	store, closeFn, err := sf.open()
	if err != nil {
		fmt.Fprintf(errOut, "open store: %v\n", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	if !store.Has(id) {
		_, _ = fmt.Fprintln(out, "absent")
		return 1
	}
	_, _ = fmt.Fprintln(out, "present")
	return 0
}

func cmdBlob(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xordata blob <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: put, get")
		return 2
	}
	switch args[0] {
	case "put":
		return cmdBlobPut(args[1:], out, errOut)
	case "get":
		return cmdBlobGet(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown blob subcommand: %s\n", args[0])
		return 2
	}
}

func cmdBlobPut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("blob put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var sf storeFlags
	var ownerKey string
	sf.register(fs)
	fs.StringVar(&ownerKey, "owner", "", "Owner public key (base58); stores a private blob")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata blob put [store flags] [--owner <base58-public-key>] <file>")
		return 2
	}
	value, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}

	var b blob.Blob
	if ownerKey != "" {
		owner, err := keys.DecodePublicKeyBase58(ownerKey)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --owner: %v\n", err)
			return 2
		}
		b, err = blob.NewPrivate(value, owner)
		if err != nil {
			fmt.Fprintf(errOut, "blob: %v\n", err)
			return 1
		}
	} else {
		b, err = blob.NewPublic(value)
		if err != nil {
			fmt.Fprintf(errOut, "blob: %v\n", err)
			return 1
		}
	}

	store, closeFn, err := sf.open()
	if err != nil {
		fmt.Fprintf(errOut, "open store: %v\n", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	vault := storage.NewVault(store)
	id, err := vault.PutBlob(b)
	if err != nil {
		fmt.Fprintf(errOut, "put: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Address: %s\n", b.Address().EncodeBase58())
	fmt.Fprintf(out, "CID: %s\n", id)
	return 0
}

func cmdBlobGet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("blob get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var sf storeFlags
	var addrStr string
	var outPath string
	sf.register(fs)
	fs.StringVar(&addrStr, "addr", "", "Expected blob address (base58); verified against the fetched blob")
	fs.StringVar(&outPath, "o", "", "Write the blob value to a file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xordata blob get [store flags] [--addr <base58-address>] [-o <file>] <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}

	store, closeFn, err := sf.open()
	if err != nil {
		fmt.Fprintf(errOut, "open store: %v\n", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	raw, err := store.Get(id)
	if err != nil {
		fmt.Fprintf(errOut, "get: %v\n", err)
		return 1
	}
	b, err := blob.Decode(raw)
	if err != nil {
		fmt.Fprintf(errOut, "decode blob: %v\n", err)
		return 1
	}
	if addrStr != "" {
		addr, err := blob.DecodeAddressBase58(addrStr)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --addr: %v\n", err)
			return 2
		}
		if err := blob.Verify(b, addr); err != nil {
			fmt.Fprintf(errOut, "verify: %v\n", err)
			return 1
		}
	}
	return writeOutput(b.Value(), outPath, out, errOut)
}

func writeOutput(b []byte, path string, out io.Writer, errOut io.Writer) int {
	if path == "" {
		_, _ = out.Write(b)
		return 0
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", path, err)
		return 1
	}
	return 0
}
