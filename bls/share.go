package bls

import (
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/ecc/bls12381"
)

// SecretKeySet is a random polynomial of degree threshold over the scalar
// field. The group secret is its evaluation at zero; share i is its
// evaluation at i+1.
//
// Forming a group signature requires threshold+1 distinct signature shares.
type SecretKeySet struct {
	coeff []bls12381.Scalar
}

// PublicKeySet is the public commitment to a SecretKeySet: the polynomial
// coefficients multiplied into G1. It yields the group public key, every
// share's public key, and the share-combination capability.
type PublicKeySet struct {
	comm []bls12381.G1
}

// SecretKeyShare is one share of a group secret.
type SecretKeyShare struct {
	sk SecretKey
}

// PublicKeyShare is the verification key for one share.
type PublicKeyShare struct {
	pk PublicKey
}

// SignatureShare is one share of a group signature.
type SignatureShare struct {
	sig Signature
}

// RandomSecretKeySet samples a secret key set with the given threshold.
func RandomSecretKeySet(threshold int, rnd io.Reader) (*SecretKeySet, error) {
	if threshold < 0 {
		return nil, errors.New("bls: negative threshold")
	}
	coeff := make([]bls12381.Scalar, threshold+1)
	for i := range coeff {
		if err := coeff[i].Random(rnd); err != nil {
			return nil, err
		}
	}
	return &SecretKeySet{coeff: coeff}, nil
}

// Threshold returns the number of shares beyond which a group signature can
// be formed (quorum = Threshold()+1).
func (s *SecretKeySet) Threshold() int {
	return len(s.coeff) - 1
}

// SecretKeyShare evaluates the polynomial for share index i.
func (s *SecretKeySet) SecretKeyShare(i int) SecretKeyShare {
	x := shareX(i)
	var acc bls12381.Scalar
	acc = s.coeff[len(s.coeff)-1]
	for j := len(s.coeff) - 2; j >= 0; j-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &s.coeff[j])
	}
	return SecretKeyShare{sk: SecretKey{s: acc}}
}

// PublicKeys returns the public commitment to the set.
func (s *SecretKeySet) PublicKeys() PublicKeySet {
	comm := make([]bls12381.G1, len(s.coeff))
	for i := range s.coeff {
		comm[i].ScalarMult(&s.coeff[i], bls12381.G1Generator())
	}
	return PublicKeySet{comm: comm}
}

// Threshold mirrors SecretKeySet.Threshold.
func (ps PublicKeySet) Threshold() int {
	return len(ps.comm) - 1
}

// PublicKey returns the group public key.
func (ps PublicKeySet) PublicKey() PublicKey {
	return PublicKey{p: ps.comm[0]}
}

// PublicKeyShare returns the verification key for share index i.
func (ps PublicKeySet) PublicKeyShare(i int) PublicKeyShare {
	x := shareX(i)
	var acc bls12381.G1
	acc = ps.comm[len(ps.comm)-1]
	for j := len(ps.comm) - 2; j >= 0; j-- {
		var scaled bls12381.G1
		scaled.ScalarMult(&x, &acc)
		acc.Add(&scaled, &ps.comm[j])
	}
	return PublicKeyShare{pk: PublicKey{p: acc}}
}

// CombineSignatures interpolates a group signature from shares, keyed by
// share index. At least Threshold()+1 distinct shares are required. Shares
// are not individually verified here; a bad share yields a group signature
// that fails verification.
func (ps PublicKeySet) CombineSignatures(shares map[int]SignatureShare) (Signature, error) {
	if len(shares) < ps.Threshold()+1 {
		return Signature{}, fmt.Errorf("bls: need %d shares, got %d", ps.Threshold()+1, len(shares))
	}
	indices := make([]int, 0, len(shares))
	for i := range shares {
		if i < 0 {
			return Signature{}, errors.New("bls: negative share index")
		}
		indices = append(indices, i)
	}

	var acc bls12381.G2
	acc.SetIdentity()
	for _, j := range indices {
		lambda, err := lagrangeAtZero(j, indices)
		if err != nil {
			return Signature{}, err
		}
		share := shares[j]
		var term bls12381.G2
		term.ScalarMult(&lambda, &share.sig.p)
		acc.Add(&acc, &term)
	}
	return Signature{p: acc}, nil
}

// Bytes returns the concatenated compressed commitments.
func (ps PublicKeySet) Bytes() []byte {
	out := make([]byte, 0, len(ps.comm)*PublicKeySize)
	for i := range ps.comm {
		out = append(out, ps.comm[i].BytesCompressed()...)
	}
	return out
}

// PublicKeySetFromBytes reverses Bytes.
func PublicKeySetFromBytes(b []byte) (PublicKeySet, error) {
	if len(b) == 0 || len(b)%PublicKeySize != 0 {
		return PublicKeySet{}, errors.New("bls: invalid public key set length")
	}
	comm := make([]bls12381.G1, len(b)/PublicKeySize)
	for i := range comm {
		if err := comm[i].SetBytes(b[i*PublicKeySize : (i+1)*PublicKeySize]); err != nil {
			return PublicKeySet{}, err
		}
	}
	return PublicKeySet{comm: comm}, nil
}

// Equal reports commitment equality.
func (ps PublicKeySet) Equal(other PublicKeySet) bool {
	if len(ps.comm) != len(other.comm) {
		return false
	}
	for i := range ps.comm {
		if !ps.comm[i].IsEqual(&other.comm[i]) {
			return false
		}
	}
	return true
}

// PublicKeyShare returns the share's verification key.
func (s SecretKeyShare) PublicKeyShare() PublicKeyShare {
	return PublicKeyShare{pk: s.sk.PublicKey()}
}

// Sign produces this share's contribution to a group signature on msg.
func (s SecretKeyShare) Sign(msg []byte) SignatureShare {
	return SignatureShare{sig: s.sk.Sign(msg)}
}

// Bytes returns the scalar encoding of the share.
func (s SecretKeyShare) Bytes() []byte {
	return s.sk.Bytes()
}

// SecretKeyShareFromBytes reverses Bytes.
func SecretKeyShareFromBytes(b []byte) (SecretKeyShare, error) {
	sk, err := SecretKeyFromBytes(b)
	if err != nil {
		return SecretKeyShare{}, err
	}
	return SecretKeyShare{sk: *sk}, nil
}

// Verify reports whether share is a valid contribution to a group signature
// on msg under this share key.
func (p PublicKeyShare) Verify(share SignatureShare, msg []byte) bool {
	return p.pk.Verify(share.sig, msg)
}

// Bytes returns the compressed point encoding.
func (p PublicKeyShare) Bytes() []byte {
	return p.pk.Bytes()
}

// PublicKeyShareFromBytes reverses Bytes.
func PublicKeyShareFromBytes(b []byte) (PublicKeyShare, error) {
	pk, err := PublicKeyFromBytes(b)
	if err != nil {
		return PublicKeyShare{}, err
	}
	return PublicKeyShare{pk: pk}, nil
}

// Equal reports point equality.
func (p PublicKeyShare) Equal(other PublicKeyShare) bool {
	return p.pk.Equal(other.pk)
}

// Bytes returns the compressed point encoding.
func (s SignatureShare) Bytes() []byte {
	return s.sig.Bytes()
}

// SignatureShareFromBytes reverses Bytes.
func SignatureShareFromBytes(b []byte) (SignatureShare, error) {
	sig, err := SignatureFromBytes(b)
	if err != nil {
		return SignatureShare{}, err
	}
	return SignatureShare{sig: sig}, nil
}

// Equal reports point equality.
func (s SignatureShare) Equal(other SignatureShare) bool {
	return s.sig.Equal(other.sig)
}

// shareX maps share index i to its polynomial evaluation point i+1.
// Zero is reserved for the group secret.
func shareX(i int) bls12381.Scalar {
	var x bls12381.Scalar
	x.SetUint64(uint64(i) + 1)
	return x
}

// lagrangeAtZero computes the Lagrange coefficient for share j over the
// given index set, evaluated at zero. Indices come from map keys and are
// therefore distinct, so the denominator is never zero.
func lagrangeAtZero(j int, indices []int) (bls12381.Scalar, error) {
	xj := shareX(j)
	var num, den bls12381.Scalar
	num.SetOne()
	den.SetOne()
	for _, m := range indices {
		if m == j {
			continue
		}
		xm := shareX(m)
		num.Mul(&num, &xm)
		var diff bls12381.Scalar
		diff.Sub(&xm, &xj)
		den.Mul(&den, &diff)
	}
	var denInv bls12381.Scalar
	denInv.Inv(&den)
	var lambda bls12381.Scalar
	lambda.Mul(&num, &denInv)
	return lambda, nil
}
