package grpcstore

import (
	"context"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/xordata/blob"
	"xdao.co/xordata/cidutil"
	"xdao.co/xordata/storage"
)

// Server exposes a chunk store and its blob Vault over the ChunkService.
//
// Chunk methods enforce the CID contract on the server side. Blob methods
// decode the canonical bytes before storing, so only well-formed blobs whose
// names match their content ever reach the store, and serve reads by XOR
// address through the Vault.
type Server struct {
	store storage.ChunkStore
	vault *storage.Vault
}

// NewServer wraps a chunk store with a fresh blob index.
func NewServer(store storage.ChunkStore) *Server {
	return &Server{store: store, vault: storage.NewVault(store)}
}

func (s *Server) ready() error {
	if s == nil || s.store == nil {
		return status.Error(codes.FailedPrecondition, "missing store")
	}
	return nil
}

func (s *Server) PutChunk(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	b := in.GetValue()
	expected, err := cidutil.ChunkCID(b)
	if err != nil {
		return nil, status.Error(codes.Internal, "cid computation failed")
	}
	id, err := s.store.Put(b)
	if err != nil {
		return nil, mapErr(err)
	}
	if id != expected {
		return nil, status.Error(codes.DataLoss, storage.ErrCIDMismatch.Error())
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) GetChunk(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidCID.Error())
	}
	b, err := s.store.Get(id)
	if err != nil {
		return nil, mapErr(err)
	}
	got, err := cidutil.ChunkCID(b)
	if err != nil {
		return nil, status.Error(codes.Internal, "cid computation failed")
	}
	if got != id {
		return nil, status.Error(codes.DataLoss, storage.ErrCIDMismatch.Error())
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) HasChunk(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidCID.Error())
	}
	return wrapperspb.Bool(s.store.Has(id)), nil
}

func (s *Server) PutBlob(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	b, err := blob.Decode(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if _, err := s.vault.PutBlob(b); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(b.Address().EncodeBase58()), nil
}

func (s *Server) GetBlob(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	addr, err := blob.DecodeAddressBase58(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	b, err := s.vault.GetBlob(addr)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(b.CanonicalBytes()), nil
}

func (s *Server) HasBlob(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	addr, err := blob.DecodeAddressBase58(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.Bool(s.vault.HasBlob(addr)), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case storage.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case err == storage.ErrInvalidCID:
		return status.Error(codes.InvalidArgument, err.Error())
	case err == storage.ErrCIDMismatch:
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
