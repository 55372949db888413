package keys

import (
	"crypto/rand"
	"errors"
	"sort"
	"testing"

	"xdao.co/xordata/bls"
	"xdao.co/xordata/xorname"
)

func genKeypairs(t *testing.T) []Keypair {
	t.Helper()
	ed, err := NewEd25519Keypair(rand.Reader)
	if err != nil {
		t.Fatalf("NewEd25519Keypair: %v", err)
	}
	group, err := NewBLSKeypair(rand.Reader)
	if err != nil {
		t.Fatalf("NewBLSKeypair: %v", err)
	}
	set, err := bls.RandomSecretKeySet(1, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	share := NewShareKeypair(0, set.SecretKeyShare(0), set.PublicKeys())
	return []Keypair{ed, group, share}
}

func TestSignVerifyAllSchemes(t *testing.T) {
	msg := []byte("a message to sign")
	for _, kp := range genKeypairs(t) {
		sig := kp.Sign(msg)
		if sig.Scheme() != kp.Scheme() {
			t.Fatalf("%s: signature scheme %s", kp.Scheme(), sig.Scheme())
		}
		if err := kp.PublicKey().Verify(sig, msg); err != nil {
			t.Fatalf("%s: verify: %v", kp.Scheme(), err)
		}
		if err := kp.PublicKey().Verify(sig, []byte("another message")); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("%s: expected ErrInvalidSignature for wrong message, got %v", kp.Scheme(), err)
		}
	}
}

func TestSchemeMismatchRejectedForEveryPair(t *testing.T) {
	msg := []byte("mismatch grid")
	kps := genKeypairs(t)
	for i, kpKey := range kps {
		for j, kpSig := range kps {
			if i == j {
				continue
			}
			err := kpKey.PublicKey().Verify(kpSig.Sign(msg), msg)
			if !errors.Is(err, ErrSigningKeyTypeMismatch) {
				t.Fatalf("key %s vs signature %s: expected ErrSigningKeyTypeMismatch, got %v",
					kpKey.Scheme(), kpSig.Scheme(), err)
			}
		}
	}
}

func TestPublicKeyBase58RoundTrip(t *testing.T) {
	for _, kp := range genKeypairs(t) {
		pk := kp.PublicKey()
		decoded, err := DecodePublicKeyBase58(pk.EncodeBase58())
		if err != nil {
			t.Fatalf("%s: decode: %v", kp.Scheme(), err)
		}
		if !pk.Equal(decoded) {
			t.Fatalf("%s: round trip mismatch", kp.Scheme())
		}
	}
}

func TestPublicKeyCanonicalRoundTrip(t *testing.T) {
	for _, kp := range genKeypairs(t) {
		pk := kp.PublicKey()
		decoded, err := DecodePublicKey(pk.CanonicalBytes())
		if err != nil {
			t.Fatalf("%s: decode: %v", kp.Scheme(), err)
		}
		if !pk.Equal(decoded) {
			t.Fatalf("%s: canonical round trip mismatch", kp.Scheme())
		}
	}
	if _, err := DecodePublicKey([]byte{9}); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}

func TestSignatureCanonicalRoundTrip(t *testing.T) {
	msg := []byte("encode me")
	for _, kp := range genKeypairs(t) {
		sig := kp.Sign(msg)
		decoded, err := DecodeSignature(sig.CanonicalBytes())
		if err != nil {
			t.Fatalf("%s: decode: %v", kp.Scheme(), err)
		}
		if !sig.Equal(decoded) {
			t.Fatalf("%s: signature round trip mismatch", kp.Scheme())
		}
		if err := kp.PublicKey().Verify(decoded, msg); err != nil {
			t.Fatalf("%s: decoded signature does not verify: %v", kp.Scheme(), err)
		}
	}
}

func TestOrderingConsistentWithEquality(t *testing.T) {
	kps := genKeypairs(t)
	pks := make([]PublicKey, len(kps))
	for i, kp := range kps {
		pks[i] = kp.PublicKey()
	}
	sort.Slice(pks, func(i, j int) bool { return pks[i].Compare(pks[j]) < 0 })
	for i := 0; i < len(pks); i++ {
		if pks[i].Compare(pks[i]) != 0 || !pks[i].Equal(pks[i]) {
			t.Fatalf("key %d not equal to itself", i)
		}
		for j := i + 1; j < len(pks); j++ {
			if pks[i].Compare(pks[j]) >= 0 {
				t.Fatalf("sorted keys out of order at %d,%d", i, j)
			}
			if pks[i].Equal(pks[j]) {
				t.Fatalf("distinct keys compare equal at %d,%d", i, j)
			}
		}
	}
}

func TestShareIndexSurvivesEncoding(t *testing.T) {
	set, err := bls.RandomSecretKeySet(1, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	const index = 7
	kp := NewShareKeypair(index, set.SecretKeyShare(index), set.PublicKeys())
	sig := kp.Sign([]byte("vote"))

	if got, ok := sig.ShareIndex(); !ok || got != index {
		t.Fatalf("ShareIndex = %d, %v; want %d", got, ok, index)
	}
	decoded, err := DecodeSignature(sig.CanonicalBytes())
	if err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	if got, ok := decoded.ShareIndex(); !ok || got != index {
		t.Fatalf("decoded ShareIndex = %d, %v; want %d", got, ok, index)
	}
}

func TestKeypairName(t *testing.T) {
	for _, kp := range genKeypairs(t) {
		if kp.PublicKey().Name() == (xorname.Name{}) {
			t.Fatalf("%s: name is zero", kp.Scheme())
		}
	}
}
