package grpcstore

import (
	"context"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/xordata/blob"
	"xdao.co/xordata/cidutil"
	"xdao.co/xordata/storage"
)

// Client talks to a ChunkService. The chunk methods implement
// storage.ChunkStore; the blob methods mirror storage.Vault over the wire.
// Neither direction trusts the peer: chunk bytes are re-hashed against the
// CID, and blob bytes are re-decoded and verified against the address.
type Client struct {
	cc *grpc.ClientConn

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.ChunkStore = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Put(data []byte) (cid.Cid, error) {
	if c == nil || c.cc == nil {
		return cid.Undef, storage.ErrNotFound
	}
	expected, err := cidutil.ChunkCID(data)
	if err != nil {
		return cid.Undef, err
	}

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := invokeUnary[wrapperspb.StringValue](ctx, c.cc, "PutChunk", wrapperspb.Bytes(data))
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	id, err := cid.Decode(reply.GetValue())
	if err != nil || !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}
	if id != expected {
		return cid.Undef, storage.ErrCIDMismatch
	}
	return id, nil
}

func (c *Client) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := invokeUnary[wrapperspb.BytesValue](ctx, c.cc, "GetChunk", wrapperspb.String(id.String()))
	if err != nil {
		return nil, mapRPC(err)
	}
	data := reply.GetValue()
	got, err := cidutil.ChunkCID(data)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, storage.ErrCIDMismatch
	}
	return data, nil
}

func (c *Client) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := invokeUnary[wrapperspb.BoolValue](ctx, c.cc, "HasChunk", wrapperspb.String(id.String()))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

// PutBlob ships a blob's canonical bytes to the service and checks that the
// address the service derived matches the blob's own.
func (c *Client) PutBlob(b blob.Blob) (blob.Address, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := invokeUnary[wrapperspb.StringValue](ctx, c.cc, "PutBlob", wrapperspb.Bytes(b.CanonicalBytes()))
	if err != nil {
		return blob.Address{}, mapRPC(err)
	}
	addr, err := blob.DecodeAddressBase58(reply.GetValue())
	if err != nil {
		return blob.Address{}, err
	}
	if addr != b.Address() {
		return blob.Address{}, storage.ErrCIDMismatch
	}
	return addr, nil
}

// GetBlob fetches a blob by address and verifies the returned bytes really
// encode a blob living at that address.
func (c *Client) GetBlob(addr blob.Address) (blob.Blob, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := invokeUnary[wrapperspb.BytesValue](ctx, c.cc, "GetBlob", wrapperspb.String(addr.EncodeBase58()))
	if err != nil {
		return nil, mapRPC(err)
	}
	b, err := blob.Decode(reply.GetValue())
	if err != nil {
		return nil, err
	}
	if err := blob.Verify(b, addr); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Client) HasBlob(addr blob.Address) bool {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := invokeUnary[wrapperspb.BoolValue](ctx, c.cc, "HasBlob", wrapperspb.String(addr.EncodeBase58()))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
