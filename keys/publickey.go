package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"

	"xdao.co/xordata/bls"
	"xdao.co/xordata/canon"
	"xdao.co/xordata/xorname"
)

// Scheme names one of the closed set of signing schemes. The set is closed:
// cross-scheme combinations are checked exhaustively and no scheme can be
// registered at runtime.
type Scheme uint8

const (
	// SchemeEd25519 is the single-party scheme.
	SchemeEd25519 Scheme = iota
	// SchemeBLS is the threshold-group scheme (one key for a whole section).
	SchemeBLS
	// SchemeBLSShare is one member's share of a threshold group.
	SchemeBLSShare
)

func (s Scheme) String() string {
	switch s {
	case SchemeEd25519:
		return "ed25519"
	case SchemeBLS:
		return "bls"
	case SchemeBLSShare:
		return "bls-share"
	default:
		return fmt.Sprintf("scheme(%d)", uint8(s))
	}
}

// Canonical variant tags. Wire contract; must not change.
const (
	tagEd25519  = 0
	tagBLS      = 1
	tagBLSShare = 2
)

// PublicKey is a verification key in one of the three schemes.
//
// The zero value is not a valid key; obtain one from a Keypair or a decode
// function.
type PublicKey struct {
	scheme   Scheme
	ed       ed25519.PublicKey
	bls      bls.PublicKey
	blsShare bls.PublicKeyShare
}

// NewEd25519PublicKey wraps an Ed25519 verification key.
func NewEd25519PublicKey(pk ed25519.PublicKey) PublicKey {
	owned := make(ed25519.PublicKey, len(pk))
	copy(owned, pk)
	return PublicKey{scheme: SchemeEd25519, ed: owned}
}

// NewBLSPublicKey wraps a threshold-group verification key.
func NewBLSPublicKey(pk bls.PublicKey) PublicKey {
	return PublicKey{scheme: SchemeBLS, bls: pk}
}

// NewBLSSharePublicKey wraps a group member's share verification key.
func NewBLSSharePublicKey(pk bls.PublicKeyShare) PublicKey {
	return PublicKey{scheme: SchemeBLSShare, blsShare: pk}
}

// Scheme returns the key's scheme.
func (pk PublicKey) Scheme() Scheme {
	return pk.scheme
}

// Ed25519 returns the Ed25519 key, if applicable.
func (pk PublicKey) Ed25519() (ed25519.PublicKey, bool) {
	if pk.scheme != SchemeEd25519 {
		return nil, false
	}
	return pk.ed, true
}

// BLS returns the group key, if applicable.
func (pk PublicKey) BLS() (bls.PublicKey, bool) {
	if pk.scheme != SchemeBLS {
		return bls.PublicKey{}, false
	}
	return pk.bls, true
}

// BLSShare returns the share key, if applicable.
func (pk PublicKey) BLSShare() (bls.PublicKeyShare, bool) {
	if pk.scheme != SchemeBLSShare {
		return bls.PublicKeyShare{}, false
	}
	return pk.blsShare, true
}

// Verify checks sig over msg.
//
// It returns ErrSigningKeyTypeMismatch when key and signature name different
// schemes (before any cryptography), ErrInvalidSignature on cryptographic
// failure, and nil only on cryptographic validity.
func (pk PublicKey) Verify(sig Signature, msg []byte) error {
	if pk.scheme != sig.scheme {
		return ErrSigningKeyTypeMismatch
	}
	var ok bool
	switch pk.scheme {
	case SchemeEd25519:
		ok = ed25519.Verify(pk.ed, msg, sig.ed)
	case SchemeBLS:
		ok = pk.bls.Verify(sig.bls, msg)
	case SchemeBLSShare:
		ok = pk.blsShare.Verify(sig.share.Share, msg)
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

// CanonicalBytes implements canon.Marshaler. The encoding is a one-byte
// scheme tag followed by the scheme's fixed-width key bytes.
func (pk PublicKey) CanonicalBytes() []byte {
	w := canon.NewWriter()
	switch pk.scheme {
	case SchemeEd25519:
		w.Tag(tagEd25519)
		w.Raw(pk.ed)
	case SchemeBLS:
		w.Tag(tagBLS)
		w.Raw(pk.bls.Bytes())
	case SchemeBLSShare:
		w.Tag(tagBLSShare)
		w.Raw(pk.blsShare.Bytes())
	}
	return w.Sum()
}

// DecodePublicKey reverses CanonicalBytes.
func DecodePublicKey(b []byte) (PublicKey, error) {
	r := canon.NewReader(b)
	tag, err := r.Tag()
	if err != nil {
		return PublicKey{}, err
	}
	var pk PublicKey
	switch tag {
	case tagEd25519:
		raw, err := r.Raw(ed25519.PublicKeySize)
		if err != nil {
			return PublicKey{}, err
		}
		pk = PublicKey{scheme: SchemeEd25519, ed: raw}
	case tagBLS:
		raw, err := r.Raw(bls.PublicKeySize)
		if err != nil {
			return PublicKey{}, err
		}
		inner, err := bls.PublicKeyFromBytes(raw)
		if err != nil {
			return PublicKey{}, err
		}
		pk = PublicKey{scheme: SchemeBLS, bls: inner}
	case tagBLSShare:
		raw, err := r.Raw(bls.PublicKeySize)
		if err != nil {
			return PublicKey{}, err
		}
		inner, err := bls.PublicKeyShareFromBytes(raw)
		if err != nil {
			return PublicKey{}, err
		}
		pk = PublicKey{scheme: SchemeBLSShare, blsShare: inner}
	default:
		return PublicKey{}, fmt.Errorf("keys: unknown public key tag %d", tag)
	}
	if err := r.Done(); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// Name projects the key into XOR space: Ed25519 keys map onto their raw 32
// bytes, BLS keys onto the leading 32 bytes of their compressed encoding.
func (pk PublicKey) Name() xorname.Name {
	switch pk.scheme {
	case SchemeEd25519:
		n, _ := xorname.FromBytes(pk.ed)
		return n
	case SchemeBLS:
		n, _ := xorname.FromPrefix(pk.bls.Bytes())
		return n
	case SchemeBLSShare:
		n, _ := xorname.FromPrefix(pk.blsShare.Bytes())
		return n
	default:
		return xorname.Name{}
	}
}

// Equal reports canonical-byte equality.
func (pk PublicKey) Equal(other PublicKey) bool {
	return canon.Equal(pk, other)
}

// Compare orders keys by canonical bytes. Total, and consistent with Equal.
func (pk PublicKey) Compare(other PublicKey) int {
	return canon.Compare(pk, other)
}

// Key returns the canonical bytes as a string, for use as a map key.
func (pk PublicKey) Key() string {
	return string(pk.CanonicalBytes())
}

// EncodeBase58 returns the canonical bytes in the base58 display alphabet.
func (pk PublicKey) EncodeBase58() string {
	return base58.Encode(pk.CanonicalBytes())
}

// DecodePublicKeyBase58 reverses EncodeBase58.
func DecodePublicKeyBase58(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("keys: %w", err)
	}
	return DecodePublicKey(b)
}

func (pk PublicKey) String() string {
	name := pk.Name()
	return fmt.Sprintf("PublicKey::%s(%s)", pk.scheme, hex.EncodeToString(name[:4]))
}
