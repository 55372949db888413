package keys

import (
	"fmt"

	"xdao.co/xordata/bls"
	"xdao.co/xordata/canon"
)

// Proof binds a signature and its verifying key to a payload. The payload is
// not stored; Verify re-derives its canonical bytes, so a proof can never be
// detached from one value and attached to another.
type Proof struct {
	PublicKey PublicKey
	Signature Signature
}

// NewProof builds a proof from key material and a signature over the
// payload's canonical bytes.
func NewProof(pk PublicKey, sig Signature) Proof {
	return Proof{PublicKey: pk, Signature: sig}
}

// SignProof signs value with kp and returns the resulting proof.
func SignProof(kp Keypair, value canon.Marshaler) Proof {
	return Proof{PublicKey: kp.PublicKey(), Signature: kp.Sign(value.CanonicalBytes())}
}

// Verify recomputes value's canonical bytes and checks the stored signature
// against the stored key.
func (p Proof) Verify(value canon.Marshaler) error {
	return p.PublicKey.Verify(p.Signature, value.CanonicalBytes())
}

// CanonicalBytes implements canon.Marshaler.
func (p Proof) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Marshal(p.PublicKey)
	w.Marshal(p.Signature)
	return w.Sum()
}

// ProofShare is one group member's proof contribution: its share index, the
// group's public key set, and the member's signature share over the payload.
// Aggregating quorum-many shares into a group Proof is an external
// capability (bls.PublicKeySet.CombineSignatures).
type ProofShare struct {
	Index        uint64
	PublicKeySet bls.PublicKeySet
	Share        bls.SignatureShare
}

// NewProofShare signs value with a share keypair.
func NewProofShare(kp Keypair, value canon.Marshaler) (ProofShare, error) {
	if kp.Scheme() != SchemeBLSShare {
		return ProofShare{}, fmt.Errorf("keys: proof share requires a %s keypair, got %s", SchemeBLSShare, kp.Scheme())
	}
	sig := kp.Sign(value.CanonicalBytes())
	share, _ := sig.Share()
	return ProofShare{
		Index:        share.Index,
		PublicKeySet: kp.share.PublicKeySet,
		Share:        share.Share,
	}, nil
}

// Verify checks the share against the share's public key derived from the
// group's key set at the stored index.
func (p ProofShare) Verify(value canon.Marshaler) error {
	pk := p.PublicKeySet.PublicKeyShare(int(p.Index))
	if !pk.Verify(p.Share, value.CanonicalBytes()) {
		return ErrInvalidSignature
	}
	return nil
}

// Proven pairs a value with the proof over it. The value must not be
// trusted before Verify succeeds.
type Proven[T canon.Marshaler] struct {
	Value T
	Proof Proof
}

// NewProven wraps value with proof.
func NewProven[T canon.Marshaler](value T, proof Proof) Proven[T] {
	return Proven[T]{Value: value, Proof: proof}
}

// Verify checks the proof against the wrapped value.
func (p Proven[T]) Verify() error {
	return p.Proof.Verify(p.Value)
}
