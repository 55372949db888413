// Package request maps money commands and queries onto the routing and
// authorization metadata the surrounding runtime needs: which authorization
// class each request demands, and which section address it must be routed
// to.
package request

import (
	"fmt"

	"xdao.co/xordata/keys"
	"xdao.co/xordata/transfer"
	"xdao.co/xordata/xorname"
)

// Type classifies a request for the envelope layer.
type Type uint8

const (
	// TypeTransfer is a money mutation.
	TypeTransfer Type = iota
	// TypePrivateGet is a query answered only to its owner.
	TypePrivateGet
)

// AuthorisationKind is the authorization class the envelope must enforce
// before admitting a request.
type AuthorisationKind uint8

const (
	// AuthNone requires no extra authorization: the carried proof of
	// agreement is the authority.
	AuthNone AuthorisationKind = iota
	// AuthMutAndTransferMoney requires mutation plus transfer authority.
	AuthMutAndTransferMoney
	// AuthGetBalance requires balance-read authority.
	AuthGetBalance
	// AuthGetHistory requires history-read authority.
	AuthGetHistory
)

// MoneyRequest is one of the closed set of money requests. Implementations
// are the five variants below; the set cannot be extended.
type MoneyRequest interface {
	// Type classifies the request.
	Type() Type
	// AuthorisationKind is the authorization class required.
	AuthorisationKind() AuthorisationKind
	// DestAddress is the section address to route to. Queries answered
	// locally report false.
	DestAddress() (xorname.Name, bool)

	isMoneyRequest()
}

// ValidateTransfer asks the debit-side section to validate a transfer.
type ValidateTransfer struct {
	Cmd transfer.ValidateTransfer
}

func (r ValidateTransfer) Type() Type                           { return TypeTransfer }
func (r ValidateTransfer) AuthorisationKind() AuthorisationKind { return AuthMutAndTransferMoney }

// DestAddress routes to the section responsible for the debit.
func (r ValidateTransfer) DestAddress() (xorname.Name, bool) {
	return r.Cmd.Transfer.DebitAddress(), true
}

// RegisterTransfer asks the debit-side section to record an agreed transfer.
// The proof carries its own authority.
type RegisterTransfer struct {
	Proof transfer.ProofOfAgreement
}

func (r RegisterTransfer) Type() Type                           { return TypeTransfer }
func (r RegisterTransfer) AuthorisationKind() AuthorisationKind { return AuthNone }

// DestAddress routes to the section responsible for the debit.
func (r RegisterTransfer) DestAddress() (xorname.Name, bool) {
	return r.Proof.Cmd.Transfer.DebitAddress(), true
}

// PropagateTransfer carries an agreed transfer to the credit-side section.
// The proof carries its own authority.
type PropagateTransfer struct {
	Proof transfer.ProofOfAgreement
}

func (r PropagateTransfer) Type() Type                           { return TypeTransfer }
func (r PropagateTransfer) AuthorisationKind() AuthorisationKind { return AuthNone }

// DestAddress routes to the section responsible for the credit.
func (r PropagateTransfer) DestAddress() (xorname.Name, bool) {
	return r.Proof.Cmd.Transfer.CreditAddress(), true
}

// GetBalance reads a key's balance. Answered locally.
type GetBalance struct {
	Key keys.PublicKey
}

func (r GetBalance) Type() Type                           { return TypePrivateGet }
func (r GetBalance) AuthorisationKind() AuthorisationKind { return AuthGetBalance }
func (r GetBalance) DestAddress() (xorname.Name, bool)    { return xorname.Name{}, false }

// GetHistory reads a key's transfer history from a version on. Answered
// locally.
type GetHistory struct {
	At           keys.PublicKey
	SinceVersion uint64
}

func (r GetHistory) Type() Type                           { return TypePrivateGet }
func (r GetHistory) AuthorisationKind() AuthorisationKind { return AuthGetHistory }
func (r GetHistory) DestAddress() (xorname.Name, bool)    { return xorname.Name{}, false }

func (ValidateTransfer) isMoneyRequest()  {}
func (RegisterTransfer) isMoneyRequest()  {}
func (PropagateTransfer) isMoneyRequest() {}
func (GetBalance) isMoneyRequest()        {}
func (GetHistory) isMoneyRequest()        {}

// Name returns the request's variant name, for logs.
func Name(r MoneyRequest) string {
	switch r.(type) {
	case ValidateTransfer:
		return "ValidateTransfer"
	case RegisterTransfer:
		return "RegisterTransfer"
	case PropagateTransfer:
		return "PropagateTransfer"
	case GetBalance:
		return "GetBalance"
	case GetHistory:
		return "GetHistory"
	default:
		return fmt.Sprintf("%T", r)
	}
}
