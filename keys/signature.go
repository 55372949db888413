package keys

import (
	"crypto/ed25519"
	"fmt"

	"xdao.co/xordata/bls"
	"xdao.co/xordata/canon"
)

// SignatureShare is one member's contribution to a group signature, stamped
// with the member's share index. The index must survive unchanged through
// every transformation: external aggregation depends on it to combine shares
// correctly.
type SignatureShare struct {
	Index uint64
	Share bls.SignatureShare
}

// Signature is a signature in one of the three schemes.
type Signature struct {
	scheme Scheme
	ed     []byte
	bls    bls.Signature
	share  SignatureShare
}

// NewEd25519Signature wraps raw Ed25519 signature bytes.
func NewEd25519Signature(sig []byte) (Signature, error) {
	if len(sig) != ed25519.SignatureSize {
		return Signature{}, fmt.Errorf("keys: ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	owned := make([]byte, len(sig))
	copy(owned, sig)
	return Signature{scheme: SchemeEd25519, ed: owned}, nil
}

// NewBLSSignature wraps a group signature.
func NewBLSSignature(sig bls.Signature) Signature {
	return Signature{scheme: SchemeBLS, bls: sig}
}

// NewShareSignature wraps one member's signature share.
func NewShareSignature(index uint64, share bls.SignatureShare) Signature {
	return Signature{scheme: SchemeBLSShare, share: SignatureShare{Index: index, Share: share}}
}

// Scheme returns the signature's scheme.
func (s Signature) Scheme() Scheme {
	return s.scheme
}

// BLS returns the group signature, if applicable.
func (s Signature) BLS() (bls.Signature, bool) {
	if s.scheme != SchemeBLS {
		return bls.Signature{}, false
	}
	return s.bls, true
}

// ShareIndex returns the share index for share signatures.
func (s Signature) ShareIndex() (uint64, bool) {
	if s.scheme != SchemeBLSShare {
		return 0, false
	}
	return s.share.Index, true
}

// Share returns the signature share, if applicable.
func (s Signature) Share() (SignatureShare, bool) {
	if s.scheme != SchemeBLSShare {
		return SignatureShare{}, false
	}
	return s.share, true
}

// CanonicalBytes implements canon.Marshaler.
func (s Signature) CanonicalBytes() []byte {
	w := canon.NewWriter()
	switch s.scheme {
	case SchemeEd25519:
		w.Tag(tagEd25519)
		w.Raw(s.ed)
	case SchemeBLS:
		w.Tag(tagBLS)
		w.Raw(s.bls.Bytes())
	case SchemeBLSShare:
		w.Tag(tagBLSShare)
		w.Uint64(s.share.Index)
		w.Raw(s.share.Share.Bytes())
	}
	return w.Sum()
}

// DecodeSignature reverses CanonicalBytes.
func DecodeSignature(b []byte) (Signature, error) {
	r := canon.NewReader(b)
	tag, err := r.Tag()
	if err != nil {
		return Signature{}, err
	}
	var sig Signature
	switch tag {
	case tagEd25519:
		raw, err := r.Raw(ed25519.SignatureSize)
		if err != nil {
			return Signature{}, err
		}
		sig = Signature{scheme: SchemeEd25519, ed: raw}
	case tagBLS:
		raw, err := r.Raw(bls.SignatureSize)
		if err != nil {
			return Signature{}, err
		}
		inner, err := bls.SignatureFromBytes(raw)
		if err != nil {
			return Signature{}, err
		}
		sig = Signature{scheme: SchemeBLS, bls: inner}
	case tagBLSShare:
		index, err := r.Uint64()
		if err != nil {
			return Signature{}, err
		}
		raw, err := r.Raw(bls.SignatureSize)
		if err != nil {
			return Signature{}, err
		}
		inner, err := bls.SignatureShareFromBytes(raw)
		if err != nil {
			return Signature{}, err
		}
		sig = Signature{scheme: SchemeBLSShare, share: SignatureShare{Index: index, Share: inner}}
	default:
		return Signature{}, fmt.Errorf("keys: unknown signature tag %d", tag)
	}
	if err := r.Done(); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// Equal reports canonical-byte equality.
func (s Signature) Equal(other Signature) bool {
	return canon.Equal(s, other)
}

// Compare orders signatures by canonical bytes.
func (s Signature) Compare(other Signature) int {
	return canon.Compare(s, other)
}

func (s Signature) String() string {
	switch s.scheme {
	case SchemeBLSShare:
		return fmt.Sprintf("Signature::%s(index=%d)", s.scheme, s.share.Index)
	default:
		return fmt.Sprintf("Signature::%s(..)", s.scheme)
	}
}
