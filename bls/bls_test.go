package bls

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestSignVerify(t *testing.T) {
	sk, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	pk := sk.PublicKey()
	msg := []byte("pay alice 5 coins")

	sig := sk.Sign(msg)
	if !pk.Verify(sig, msg) {
		t.Fatalf("valid signature rejected")
	}
	if pk.Verify(sig, []byte("pay mallory 5 coins")) {
		t.Fatalf("signature accepted for wrong message")
	}

	other, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	if other.PublicKey().Verify(sig, msg) {
		t.Fatalf("signature accepted under wrong key")
	}
}

func TestSignDeterministic(t *testing.T) {
	sk, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	msg := []byte("same message")
	a := sk.Sign(msg)
	b := sk.Sign(msg)
	if !a.Equal(b) {
		t.Fatalf("signing is not deterministic")
	}
}

func TestKeyAndSignatureEncodings(t *testing.T) {
	sk, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	pk := sk.PublicKey()
	sig := sk.Sign([]byte("round trip"))

	if len(pk.Bytes()) != PublicKeySize {
		t.Fatalf("public key size = %d, want %d", len(pk.Bytes()), PublicKeySize)
	}
	if len(sig.Bytes()) != SignatureSize {
		t.Fatalf("signature size = %d, want %d", len(sig.Bytes()), SignatureSize)
	}

	pk2, err := PublicKeyFromBytes(pk.Bytes())
	if err != nil {
		t.Fatalf("PublicKeyFromBytes: %v", err)
	}
	if !pk.Equal(pk2) {
		t.Fatalf("public key round trip mismatch")
	}

	sig2, err := SignatureFromBytes(sig.Bytes())
	if err != nil {
		t.Fatalf("SignatureFromBytes: %v", err)
	}
	if !sig.Equal(sig2) {
		t.Fatalf("signature round trip mismatch")
	}

	sk2, err := SecretKeyFromBytes(sk.Bytes())
	if err != nil {
		t.Fatalf("SecretKeyFromBytes: %v", err)
	}
	if !bytes.Equal(sk.Bytes(), sk2.Bytes()) {
		t.Fatalf("secret key round trip mismatch")
	}
	if _, err := PublicKeyFromBytes(pk.Bytes()[:PublicKeySize-1]); err == nil {
		t.Fatalf("expected error for short public key")
	}
}

func TestThresholdCombine(t *testing.T) {
	const threshold = 2 // quorum of 3
	set, err := RandomSecretKeySet(threshold, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	pks := set.PublicKeys()
	msg := []byte("section agrees on debit")

	shares := make(map[int]SignatureShare)
	for _, i := range []int{0, 2, 4} {
		share := set.SecretKeyShare(i)
		sig := share.Sign(msg)
		if !pks.PublicKeyShare(i).Verify(sig, msg) {
			t.Fatalf("share %d failed its own verification", i)
		}
		shares[i] = sig
	}

	group, err := pks.CombineSignatures(shares)
	if err != nil {
		t.Fatalf("CombineSignatures: %v", err)
	}
	if !pks.PublicKey().Verify(group, msg) {
		t.Fatalf("combined signature rejected by group key")
	}

	// The combined signature is independent of which quorum produced it.
	shares2 := make(map[int]SignatureShare)
	for _, i := range []int{1, 3, 5} {
		shares2[i] = set.SecretKeyShare(i).Sign(msg)
	}
	group2, err := pks.CombineSignatures(shares2)
	if err != nil {
		t.Fatalf("CombineSignatures: %v", err)
	}
	if !group.Equal(group2) {
		t.Fatalf("different quorums produced different group signatures")
	}
}

func TestCombineBelowQuorumFails(t *testing.T) {
	set, err := RandomSecretKeySet(2, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	pks := set.PublicKeys()
	msg := []byte("not enough votes")

	shares := map[int]SignatureShare{
		0: set.SecretKeyShare(0).Sign(msg),
		1: set.SecretKeyShare(1).Sign(msg),
	}
	if _, err := pks.CombineSignatures(shares); err == nil {
		t.Fatalf("expected combine below quorum to fail")
	}
}

func TestBadShareYieldsInvalidGroupSignature(t *testing.T) {
	set, err := RandomSecretKeySet(1, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	pks := set.PublicKeys()
	msg := []byte("one forged vote")

	rogue, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	shares := map[int]SignatureShare{
		0: set.SecretKeyShare(0).Sign(msg),
		1: {sig: rogue.Sign(msg)},
	}
	group, err := pks.CombineSignatures(shares)
	if err != nil {
		t.Fatalf("CombineSignatures: %v", err)
	}
	if pks.PublicKey().Verify(group, msg) {
		t.Fatalf("group signature with forged share verified")
	}
}

func TestPublicKeySetEncoding(t *testing.T) {
	set, err := RandomSecretKeySet(1, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	pks := set.PublicKeys()
	decoded, err := PublicKeySetFromBytes(pks.Bytes())
	if err != nil {
		t.Fatalf("PublicKeySetFromBytes: %v", err)
	}
	if !pks.Equal(decoded) {
		t.Fatalf("public key set round trip mismatch")
	}
	if decoded.Threshold() != 1 {
		t.Fatalf("threshold = %d, want 1", decoded.Threshold())
	}
	if _, err := PublicKeySetFromBytes(pks.Bytes()[:10]); err == nil {
		t.Fatalf("expected error for truncated set")
	}
}
