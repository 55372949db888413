// Package bls implements the threshold-group signature scheme used for
// section consensus: BLS over BLS12-381 with secret shares produced by
// polynomial evaluation and signature shares combined by Lagrange
// interpolation.
//
// Public keys live in G1 (48 bytes compressed), signatures in G2 (96 bytes
// compressed). Any quorum of threshold+1 distinct signature shares combines
// into one group signature verifiable against the single group public key.
package bls

import (
	"errors"
	"io"

	"github.com/cloudflare/circl/ecc/bls12381"
)

const (
	// PublicKeySize is the compressed G1 point size.
	PublicKeySize = bls12381.G1SizeCompressed
	// SignatureSize is the compressed G2 point size.
	SignatureSize = bls12381.G2SizeCompressed
	// SecretKeySize is the scalar size.
	SecretKeySize = 32
)

// Ciphersuite domain separation tag for hashing messages to G2.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// SecretKey is a BLS signing key.
type SecretKey struct {
	s bls12381.Scalar
}

// PublicKey is a BLS verification key.
type PublicKey struct {
	p bls12381.G1
}

// Signature is a BLS signature.
type Signature struct {
	p bls12381.G2
}

// GenerateSecretKey samples a fresh secret key from rnd.
func GenerateSecretKey(rnd io.Reader) (*SecretKey, error) {
	var sk SecretKey
	if err := sk.s.Random(rnd); err != nil {
		return nil, err
	}
	return &sk, nil
}

// PublicKey returns the verification key for sk.
func (sk *SecretKey) PublicKey() PublicKey {
	var pk PublicKey
	pk.p.ScalarMult(&sk.s, bls12381.G1Generator())
	return pk
}

// Sign signs msg. Deterministic: same key and message give the same signature.
func (sk *SecretKey) Sign(msg []byte) Signature {
	var h bls12381.G2
	h.Hash(msg, dst)
	var sig Signature
	sig.p.ScalarMult(&sk.s, &h)
	return sig
}

// Bytes returns the scalar encoding of sk.
func (sk *SecretKey) Bytes() []byte {
	b, _ := sk.s.MarshalBinary()
	return b
}

// SecretKeyFromBytes reverses Bytes.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	var sk SecretKey
	if err := sk.s.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &sk, nil
}

// Verify reports whether sig is a valid signature on msg under pk.
func (pk PublicKey) Verify(sig Signature, msg []byte) bool {
	var h bls12381.G2
	h.Hash(msg, dst)
	left := bls12381.Pair(bls12381.G1Generator(), &sig.p)
	right := bls12381.Pair(&pk.p, &h)
	return left.IsEqual(right)
}

// Bytes returns the compressed point encoding of pk.
func (pk PublicKey) Bytes() []byte {
	return pk.p.BytesCompressed()
}

// PublicKeyFromBytes reverses Bytes. The point is validated to be on the
// curve and in the prime-order subgroup.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, errors.New("bls: invalid public key length")
	}
	if err := pk.p.SetBytes(b); err != nil {
		return pk, err
	}
	return pk, nil
}

// Equal reports point equality.
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.p.IsEqual(&other.p)
}

// Bytes returns the compressed point encoding of sig.
func (sig Signature) Bytes() []byte {
	return sig.p.BytesCompressed()
}

// SignatureFromBytes reverses Bytes.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, errors.New("bls: invalid signature length")
	}
	if err := sig.p.SetBytes(b); err != nil {
		return sig, err
	}
	return sig, nil
}

// Equal reports point equality.
func (sig Signature) Equal(other Signature) bool {
	return sig.p.IsEqual(&other.p)
}
