package keys

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"xdao.co/xordata/bls"
)

// KeypairShare is a member's slice of a threshold group: its share index,
// the secret share, and the group's public key set. The key set travels with
// the share because building an aggregate proof later requires it.
type KeypairShare struct {
	Index        uint64
	Secret       bls.SecretKeyShare
	Public       bls.PublicKeyShare
	PublicKeySet bls.PublicKeySet
}

// Keypair is a signing key in one of the three schemes.
type Keypair struct {
	scheme Scheme
	ed     ed25519.PrivateKey
	bls    *bls.SecretKey
	share  *KeypairShare
}

// NewEd25519Keypair generates a single-party keypair.
func NewEd25519Keypair(rnd io.Reader) (Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rnd)
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{scheme: SchemeEd25519, ed: priv}, nil
}

// Ed25519KeypairFromSeed builds a deterministic single-party keypair.
func Ed25519KeypairFromSeed(seed []byte) (Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return Keypair{}, fmt.Errorf("keys: ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return Keypair{scheme: SchemeEd25519, ed: ed25519.NewKeyFromSeed(seed)}, nil
}

// NewBLSKeypair generates a group keypair.
func NewBLSKeypair(rnd io.Reader) (Keypair, error) {
	sk, err := bls.GenerateSecretKey(rnd)
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{scheme: SchemeBLS, bls: sk}, nil
}

// NewShareKeypair builds a member keypair from its secret share and the
// group's public key set.
func NewShareKeypair(index uint64, secret bls.SecretKeyShare, set bls.PublicKeySet) Keypair {
	return Keypair{scheme: SchemeBLSShare, share: &KeypairShare{
		Index:        index,
		Secret:       secret,
		Public:       secret.PublicKeyShare(),
		PublicKeySet: set,
	}}
}

// Scheme returns the keypair's scheme.
func (kp Keypair) Scheme() Scheme {
	return kp.scheme
}

// PublicKey returns the verification key for this keypair.
func (kp Keypair) PublicKey() PublicKey {
	switch kp.scheme {
	case SchemeEd25519:
		return NewEd25519PublicKey(kp.ed.Public().(ed25519.PublicKey))
	case SchemeBLS:
		return NewBLSPublicKey(kp.bls.PublicKey())
	case SchemeBLSShare:
		return NewBLSSharePublicKey(kp.share.Public)
	default:
		return PublicKey{}
	}
}

// Sign signs data with the underlying key. Share signing stamps the
// signature with the keypair's share index.
func (kp Keypair) Sign(data []byte) Signature {
	switch kp.scheme {
	case SchemeEd25519:
		sig := ed25519.Sign(kp.ed, data)
		out, _ := NewEd25519Signature(sig)
		return out
	case SchemeBLS:
		return NewBLSSignature(kp.bls.Sign(data))
	case SchemeBLSShare:
		return NewShareSignature(kp.share.Index, kp.share.Secret.Sign(data))
	default:
		return Signature{}
	}
}

// ShareIndex returns the share index for share keypairs.
func (kp Keypair) ShareIndex() (uint64, bool) {
	if kp.scheme != SchemeBLSShare {
		return 0, false
	}
	return kp.share.Index, true
}

// PublicKeySet returns the group's public key set for share keypairs.
func (kp Keypair) PublicKeySet() (bls.PublicKeySet, bool) {
	if kp.scheme != SchemeBLSShare {
		return bls.PublicKeySet{}, false
	}
	return kp.share.PublicKeySet, true
}

func (kp Keypair) String() string {
	return fmt.Sprintf("Keypair::%s(..)", kp.scheme)
}
