package transfer

import (
	"crypto/rand"
	"errors"
	"testing"

	"xdao.co/xordata/bls"
	"xdao.co/xordata/keys"
	"xdao.co/xordata/money"
)

type section struct {
	set     bls.PublicKeySet
	members []keys.Keypair
	key     keys.PublicKey
}

func newSection(t *testing.T, threshold, members int) section {
	t.Helper()
	set, err := bls.RandomSecretKeySet(threshold, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeySet: %v", err)
	}
	pks := set.PublicKeys()
	s := section{set: pks, key: keys.NewBLSPublicKey(pks.PublicKey())}
	for i := 0; i < members; i++ {
		s.members = append(s.members, keys.NewShareKeypair(uint64(i), set.SecretKeyShare(i), pks))
	}
	return s
}

func clientKeypair(t *testing.T) keys.Keypair {
	t.Helper()
	kp, err := keys.NewEd25519Keypair(rand.Reader)
	if err != nil {
		t.Fatalf("NewEd25519Keypair: %v", err)
	}
	return kp
}

func buildCmd(t *testing.T, actor keys.Keypair, to keys.PublicKey, counter uint64, amount money.Money, restriction Restriction) ValidateTransfer {
	t.Helper()
	return NewValidateTransfer(actor, Transfer{
		ID:          ID{Actor: actor.PublicKey(), Counter: counter},
		To:          to,
		Amount:      amount,
		Restriction: restriction,
	})
}

func agree(t *testing.T, sec section, cmd ValidateTransfer) ProofOfAgreement {
	t.Helper()
	var validations []TransferValidated
	for _, m := range sec.members[:sec.set.Threshold()+1] {
		tv, err := NewTransferValidated(m, cmd)
		if err != nil {
			t.Fatalf("NewTransferValidated: %v", err)
		}
		validations = append(validations, tv)
	}
	proof, err := Aggregate(sec.set, cmd, validations)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	return proof
}

func TestValidateTransferSignature(t *testing.T) {
	actor := clientKeypair(t)
	cmd := buildCmd(t, actor, clientKeypair(t).PublicKey(), 1, money.FromNano(10), NoRestriction)
	if err := cmd.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	cmd.Transfer.Amount = money.FromNano(11)
	if err := cmd.Verify(); !errors.Is(err, keys.ErrInvalidSignature) {
		t.Fatalf("tampered transfer: %v", err)
	}
}

func TestAggregateQuorum(t *testing.T) {
	sec := newSection(t, 1, 4)
	actor := clientKeypair(t)
	cmd := buildCmd(t, actor, clientKeypair(t).PublicKey(), 1, money.FromNano(5), NoRestriction)

	proof := agree(t, sec, cmd)
	if err := proof.Verify(sec.key); err != nil {
		t.Fatalf("proof verify: %v", err)
	}

	// A lone share is below quorum.
	tv, err := NewTransferValidated(sec.members[0], cmd)
	if err != nil {
		t.Fatalf("NewTransferValidated: %v", err)
	}
	if _, err := Aggregate(sec.set, cmd, []TransferValidated{tv}); err == nil {
		t.Fatalf("below-quorum aggregation succeeded")
	}
}

func TestAggregateRejectsForeignValidation(t *testing.T) {
	sec := newSection(t, 1, 3)
	actor := clientKeypair(t)
	cmd := buildCmd(t, actor, clientKeypair(t).PublicKey(), 1, money.FromNano(5), NoRestriction)
	other := buildCmd(t, actor, clientKeypair(t).PublicKey(), 2, money.FromNano(6), NoRestriction)

	good, err := NewTransferValidated(sec.members[0], cmd)
	if err != nil {
		t.Fatalf("NewTransferValidated: %v", err)
	}
	stray, err := NewTransferValidated(sec.members[1], other)
	if err != nil {
		t.Fatalf("NewTransferValidated: %v", err)
	}
	if _, err := Aggregate(sec.set, cmd, []TransferValidated{good, stray}); err == nil {
		t.Fatalf("validation for a different command accepted")
	}
}

func TestTransferValidatedRequiresShareKeypair(t *testing.T) {
	actor := clientKeypair(t)
	cmd := buildCmd(t, actor, clientKeypair(t).PublicKey(), 1, money.FromNano(5), NoRestriction)
	if _, err := NewTransferValidated(actor, cmd); err == nil {
		t.Fatalf("ed25519 keypair accepted as elder")
	}
}

func TestRegisterDebitsAndReplays(t *testing.T) {
	sec := newSection(t, 1, 3)
	reg := NewRegistry(sec.key)
	actor := clientKeypair(t)
	recipient := clientKeypair(t)

	if err := reg.Deposit(actor.PublicKey(), money.FromNano(100)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	cmd := buildCmd(t, actor, recipient.PublicKey(), 1, money.FromNano(40), NoRestriction)
	proof := agree(t, sec, cmd)

	if _, err := reg.Register(RegisterTransfer{Proof: proof}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if bal, ok := reg.Balance(actor.PublicKey()); !ok || bal.Nano() != 60 {
		t.Fatalf("balance after debit = %v, %v", bal, ok)
	}
	if got := reg.History(actor.PublicKey(), 0); len(got) != 1 {
		t.Fatalf("history length = %d", len(got))
	}

	// The same (actor, counter) pair must be rejected.
	if _, err := reg.Register(RegisterTransfer{Proof: proof}); !errors.Is(err, ErrTransferReplayed) {
		t.Fatalf("replay: %v", err)
	}
	if bal, _ := reg.Balance(actor.PublicKey()); bal.Nano() != 60 {
		t.Fatalf("replay changed balance to %v", bal)
	}
}

func TestRegisterInsufficientBalance(t *testing.T) {
	sec := newSection(t, 1, 3)
	reg := NewRegistry(sec.key)
	actor := clientKeypair(t)

	cmd := buildCmd(t, actor, clientKeypair(t).PublicKey(), 1, money.FromNano(40), NoRestriction)
	proof := agree(t, sec, cmd)
	if _, err := reg.Register(RegisterTransfer{Proof: proof}); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestPropagateCreditsRecipient(t *testing.T) {
	sec := newSection(t, 1, 3)
	reg := NewRegistry(sec.key)
	actor := clientKeypair(t)
	recipient := clientKeypair(t)

	cmd := buildCmd(t, actor, recipient.PublicKey(), 1, money.FromNano(25), NoRestriction)
	proof := agree(t, sec, cmd)

	note, err := reg.Propagate(PropagateTransfer{Proof: proof})
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if note.Proof.Cmd.Transfer.Amount.Nano() != 25 {
		t.Fatalf("notification carries wrong amount")
	}
	if bal, ok := reg.Balance(recipient.PublicKey()); !ok || bal.Nano() != 25 {
		t.Fatalf("recipient balance = %v, %v", bal, ok)
	}
	if got := reg.Incoming(recipient.PublicKey()); len(got) != 1 {
		t.Fatalf("incoming length = %d", len(got))
	}
}

func TestPropagateRejectsReplayedProof(t *testing.T) {
	sec := newSection(t, 1, 3)
	reg := NewRegistry(sec.key)
	actor := clientKeypair(t)
	recipient := clientKeypair(t)

	cmd := buildCmd(t, actor, recipient.PublicKey(), 1, money.FromNano(10), NoRestriction)
	proof := agree(t, sec, cmd)

	if _, err := reg.Propagate(PropagateTransfer{Proof: proof}); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if _, err := reg.Propagate(PropagateTransfer{Proof: proof}); !errors.Is(err, ErrTransferReplayed) {
		t.Fatalf("second Propagate: %v", err)
	}
	if bal, ok := reg.Balance(recipient.PublicKey()); !ok || bal.Nano() != 10 {
		t.Fatalf("recipient balance = %v, %v after replayed credit", bal, ok)
	}
	if got := reg.Incoming(recipient.PublicKey()); len(got) != 1 {
		t.Fatalf("incoming length = %d", len(got))
	}

	// A distinct counter from the same actor is a new transfer, not a replay.
	second := agree(t, sec, buildCmd(t, actor, recipient.PublicKey(), 2, money.FromNano(5), NoRestriction))
	if _, err := reg.Propagate(PropagateTransfer{Proof: second}); err != nil {
		t.Fatalf("Propagate distinct counter: %v", err)
	}
	if bal, _ := reg.Balance(recipient.PublicKey()); bal.Nano() != 15 {
		t.Fatalf("recipient balance = %v", bal)
	}
}

func TestRestrictionGating(t *testing.T) {
	sec := newSection(t, 1, 3)
	reg := NewRegistry(sec.key)
	actor := clientKeypair(t)
	recipient := clientKeypair(t)
	if err := reg.Deposit(actor.PublicKey(), money.FromNano(100)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	// No history yet: RequireHistory refused, ExpectNoHistory accepted.
	requireCmd := buildCmd(t, actor, recipient.PublicKey(), 1, money.FromNano(1), RequireHistory)
	if err := reg.CheckValidation(requireCmd); !errors.Is(err, ErrHistoryRequired) {
		t.Fatalf("RequireHistory without history: %v", err)
	}
	firstCmd := buildCmd(t, actor, recipient.PublicKey(), 1, money.FromNano(1), ExpectNoHistory)
	if err := reg.CheckValidation(firstCmd); err != nil {
		t.Fatalf("ExpectNoHistory without history: %v", err)
	}
	if _, err := reg.Register(RegisterTransfer{Proof: agree(t, sec, firstCmd)}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// With history the polarity flips; NoRestriction passes either way.
	secondExpect := buildCmd(t, actor, recipient.PublicKey(), 2, money.FromNano(1), ExpectNoHistory)
	if err := reg.CheckValidation(secondExpect); !errors.Is(err, ErrHistoryExists) {
		t.Fatalf("ExpectNoHistory with history: %v", err)
	}
	secondRequire := buildCmd(t, actor, recipient.PublicKey(), 2, money.FromNano(1), RequireHistory)
	if err := reg.CheckValidation(secondRequire); err != nil {
		t.Fatalf("RequireHistory with history: %v", err)
	}
	secondFree := buildCmd(t, actor, recipient.PublicKey(), 2, money.FromNano(1), NoRestriction)
	if err := reg.CheckValidation(secondFree); err != nil {
		t.Fatalf("NoRestriction with history: %v", err)
	}

	// Replaying the registered counter fails validation too.
	replay := buildCmd(t, actor, recipient.PublicKey(), 1, money.FromNano(1), NoRestriction)
	if err := reg.CheckValidation(replay); !errors.Is(err, ErrTransferReplayed) {
		t.Fatalf("replayed counter: %v", err)
	}
}

func TestHistorySinceVersion(t *testing.T) {
	sec := newSection(t, 1, 3)
	reg := NewRegistry(sec.key)
	actor := clientKeypair(t)
	recipient := clientKeypair(t)
	if err := reg.Deposit(actor.PublicKey(), money.FromNano(100)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	for counter := uint64(1); counter <= 3; counter++ {
		cmd := buildCmd(t, actor, recipient.PublicKey(), counter, money.FromNano(1), NoRestriction)
		if _, err := reg.Register(RegisterTransfer{Proof: agree(t, sec, cmd)}); err != nil {
			t.Fatalf("Register %d: %v", counter, err)
		}
	}
	if got := reg.History(actor.PublicKey(), 1); len(got) != 2 {
		t.Fatalf("History(1) = %d entries", len(got))
	}
	if got := reg.History(actor.PublicKey(), 3); got != nil {
		t.Fatalf("History(3) = %d entries", len(got))
	}
	if got := reg.History(recipient.PublicKey(), 0); got != nil {
		t.Fatalf("recipient has debit history")
	}
}

func TestDebitAndCreditAddresses(t *testing.T) {
	actor := clientKeypair(t)
	recipient := clientKeypair(t)
	tr := Transfer{
		ID: ID{Actor: actor.PublicKey(), Counter: 1},
		To: recipient.PublicKey(),
	}
	if tr.DebitAddress() != actor.PublicKey().Name() {
		t.Fatalf("debit address not projected from actor key")
	}
	if tr.CreditAddress() != recipient.PublicKey().Name() {
		t.Fatalf("credit address not projected from destination key")
	}
}
