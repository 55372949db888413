// Package transfer implements the value-transfer agreement flow: a client
// signs a transfer, section members each sign a validation share, quorum-many
// shares combine into a proof of agreement, and the proof is registered on
// the debit side and propagated to the credit side.
//
// No single party holds unilateral authority at any step; every artifact is
// verifiable against the key that produced it.
package transfer

import (
	"fmt"

	"xdao.co/xordata/canon"
	"xdao.co/xordata/keys"
	"xdao.co/xordata/money"
	"xdao.co/xordata/xorname"
)

// ID identifies a transfer: the actor's key and a per-actor counter. The
// counter is strictly monotonic per actor and is the sole de-duplication key
// for replay defense.
type ID struct {
	Actor   keys.PublicKey
	Counter uint64
}

// CanonicalBytes implements canon.Marshaler.
func (id ID) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Bytes(id.Actor.CanonicalBytes())
	w.Uint64(id.Counter)
	return w.Sum()
}

func (id ID) String() string {
	return fmt.Sprintf("Transfer(%s, %d)", id.Actor, id.Counter)
}

// Restriction gates validation on the actor's recorded history.
type Restriction uint8

const (
	// NoRestriction validates regardless of history.
	NoRestriction Restriction = iota
	// RequireHistory refuses actors with no registered transfer.
	RequireHistory
	// ExpectNoHistory refuses actors with any registered transfer.
	ExpectNoHistory
)

func (r Restriction) String() string {
	switch r {
	case NoRestriction:
		return "no-restriction"
	case RequireHistory:
		return "require-history"
	case ExpectNoHistory:
		return "expect-no-history"
	default:
		return fmt.Sprintf("restriction(%d)", uint8(r))
	}
}

// Transfer moves an amount from the actor named in ID to a destination key.
type Transfer struct {
	ID          ID
	To          keys.PublicKey
	Amount      money.Money
	Restriction Restriction
}

// CanonicalBytes implements canon.Marshaler.
func (t Transfer) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Bytes(t.ID.CanonicalBytes())
	w.Bytes(t.To.CanonicalBytes())
	w.Marshal(t.Amount)
	w.Tag(uint8(t.Restriction))
	return w.Sum()
}

// DebitAddress is the section address responsible for the debit side,
// projected from the actor's key.
func (t Transfer) DebitAddress() xorname.Name {
	return t.ID.Actor.Name()
}

// CreditAddress is the section address responsible for the credit side,
// projected from the destination key.
func (t Transfer) CreditAddress() xorname.Name {
	return t.To.Name()
}
