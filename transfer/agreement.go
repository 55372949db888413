package transfer

import (
	"fmt"

	"xdao.co/xordata/bls"
	"xdao.co/xordata/canon"
	"xdao.co/xordata/keys"
)

// ValidateTransfer is the client command opening the flow: the transfer plus
// the actor's signature over its canonical bytes.
type ValidateTransfer struct {
	Transfer        Transfer
	ClientSignature keys.Signature
}

// NewValidateTransfer signs a transfer with the actor's keypair.
func NewValidateTransfer(kp keys.Keypair, t Transfer) ValidateTransfer {
	return ValidateTransfer{
		Transfer:        t,
		ClientSignature: kp.Sign(t.CanonicalBytes()),
	}
}

// Verify checks the client signature against the actor key named in the
// transfer's ID.
func (v ValidateTransfer) Verify() error {
	return v.Transfer.ID.Actor.Verify(v.ClientSignature, v.Transfer.CanonicalBytes())
}

// CanonicalBytes implements canon.Marshaler.
func (v ValidateTransfer) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Bytes(v.Transfer.CanonicalBytes())
	w.Bytes(v.ClientSignature.CanonicalBytes())
	return w.Sum()
}

// TransferValidated is one section member's acceptance: a threshold share
// signature over the exact ValidateTransfer bytes.
type TransferValidated struct {
	Cmd            ValidateTransfer
	ElderSignature keys.Signature
}

// NewTransferValidated signs the command with a member's share keypair.
func NewTransferValidated(kp keys.Keypair, cmd ValidateTransfer) (TransferValidated, error) {
	if kp.Scheme() != keys.SchemeBLSShare {
		return TransferValidated{}, fmt.Errorf("transfer: validation requires a share keypair, got %s", kp.Scheme())
	}
	return TransferValidated{
		Cmd:            cmd,
		ElderSignature: kp.Sign(cmd.CanonicalBytes()),
	}, nil
}

// CanonicalBytes implements canon.Marshaler.
func (tv TransferValidated) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Bytes(tv.Cmd.CanonicalBytes())
	w.Bytes(tv.ElderSignature.CanonicalBytes())
	return w.Sum()
}

// ProofOfAgreement is the section's consensus certificate: the original
// command plus the combined group signature over its bytes.
type ProofOfAgreement struct {
	Cmd              ValidateTransfer
	SectionSignature keys.Signature
}

// Verify checks both the group signature against the section key and the
// client signature inside the command.
func (p ProofOfAgreement) Verify(sectionKey keys.PublicKey) error {
	if err := sectionKey.Verify(p.SectionSignature, p.Cmd.CanonicalBytes()); err != nil {
		return fmt.Errorf("transfer: section signature: %w", err)
	}
	if err := p.Cmd.Verify(); err != nil {
		return fmt.Errorf("transfer: client signature: %w", err)
	}
	return nil
}

// CanonicalBytes implements canon.Marshaler.
func (p ProofOfAgreement) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Bytes(p.Cmd.CanonicalBytes())
	w.Bytes(p.SectionSignature.CanonicalBytes())
	return w.Sum()
}

// Aggregate combines validation shares into a ProofOfAgreement. All
// validations must cover the same command; shares from fewer than
// quorum-many distinct members fail. The combined proof is verified against
// the set's group key before being returned.
func Aggregate(set bls.PublicKeySet, cmd ValidateTransfer, validations []TransferValidated) (ProofOfAgreement, error) {
	cmdBytes := cmd.CanonicalBytes()
	shares := make(map[int]bls.SignatureShare, len(validations))
	for _, tv := range validations {
		if !canon.Equal(tv.Cmd, cmd) {
			return ProofOfAgreement{}, fmt.Errorf("transfer: validation covers a different command")
		}
		share, ok := tv.ElderSignature.Share()
		if !ok {
			return ProofOfAgreement{}, fmt.Errorf("transfer: validation signature is not a share")
		}
		shares[int(share.Index)] = share.Share
	}
	group, err := set.CombineSignatures(shares)
	if err != nil {
		return ProofOfAgreement{}, fmt.Errorf("transfer: combine shares: %w", err)
	}
	proof := ProofOfAgreement{
		Cmd:              cmd,
		SectionSignature: keys.NewBLSSignature(group),
	}
	if err := keys.NewBLSPublicKey(set.PublicKey()).Verify(proof.SectionSignature, cmdBytes); err != nil {
		return ProofOfAgreement{}, fmt.Errorf("transfer: combined signature invalid: %w", err)
	}
	return proof, nil
}

// RegisterTransfer carries a proof to the debit-side section.
type RegisterTransfer struct {
	Proof ProofOfAgreement
}

// PropagateTransfer carries a proof to the credit-side section.
type PropagateTransfer struct {
	Proof ProofOfAgreement
}

// TransferRegistered answers a successful registration.
type TransferRegistered struct {
	Proof ProofOfAgreement
}

// TransferNotification tells a recipient about an incoming credit.
type TransferNotification struct {
	Proof ProofOfAgreement
}
