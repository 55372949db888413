package request

import (
	"crypto/rand"
	"testing"

	"xdao.co/xordata/keys"
	"xdao.co/xordata/money"
	"xdao.co/xordata/transfer"
)

func testCmd(t *testing.T) transfer.ValidateTransfer {
	t.Helper()
	actor, err := keys.NewEd25519Keypair(rand.Reader)
	if err != nil {
		t.Fatalf("NewEd25519Keypair: %v", err)
	}
	recipient, err := keys.NewEd25519Keypair(rand.Reader)
	if err != nil {
		t.Fatalf("NewEd25519Keypair: %v", err)
	}
	return transfer.NewValidateTransfer(actor, transfer.Transfer{
		ID:     transfer.ID{Actor: actor.PublicKey(), Counter: 1},
		To:     recipient.PublicKey(),
		Amount: money.FromNano(1),
	})
}

func TestRoutingAndAuthorisation(t *testing.T) {
	cmd := testCmd(t)
	proof := transfer.ProofOfAgreement{Cmd: cmd}
	debit := cmd.Transfer.DebitAddress()
	credit := cmd.Transfer.CreditAddress()

	cases := []struct {
		req      MoneyRequest
		typ      Type
		auth     AuthorisationKind
		wantDest bool
	}{
		{ValidateTransfer{Cmd: cmd}, TypeTransfer, AuthMutAndTransferMoney, true},
		{RegisterTransfer{Proof: proof}, TypeTransfer, AuthNone, true},
		{PropagateTransfer{Proof: proof}, TypeTransfer, AuthNone, true},
		{GetBalance{Key: cmd.Transfer.ID.Actor}, TypePrivateGet, AuthGetBalance, false},
		{GetHistory{At: cmd.Transfer.ID.Actor}, TypePrivateGet, AuthGetHistory, false},
	}
	for _, c := range cases {
		name := Name(c.req)
		if c.req.Type() != c.typ {
			t.Errorf("%s: type = %d, want %d", name, c.req.Type(), c.typ)
		}
		if c.req.AuthorisationKind() != c.auth {
			t.Errorf("%s: auth = %d, want %d", name, c.req.AuthorisationKind(), c.auth)
		}
		dest, ok := c.req.DestAddress()
		if ok != c.wantDest {
			t.Errorf("%s: dest present = %v, want %v", name, ok, c.wantDest)
		}
		switch c.req.(type) {
		case ValidateTransfer, RegisterTransfer:
			if dest != debit {
				t.Errorf("%s: routed to %v, want debit section", name, dest)
			}
		case PropagateTransfer:
			if dest != credit {
				t.Errorf("%s: routed to %v, want credit section", name, dest)
			}
		}
	}
}
