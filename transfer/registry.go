package transfer

import (
	"fmt"

	"xdao.co/xordata/keys"
	"xdao.co/xordata/money"
)

// Error is the package's structured error type.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

var (
	// ErrTransferReplayed rejects an ID whose (actor, counter) pair is
	// already registered.
	ErrTransferReplayed = &Error{Code: "XFER-REPLAY-001", Message: "transfer id already registered for this actor"}

	// ErrHistoryRequired rejects a RequireHistory transfer from an actor
	// with no registered history.
	ErrHistoryRequired = &Error{Code: "XFER-HIST-001", Message: "actor has no transfer history"}

	// ErrHistoryExists rejects an ExpectNoHistory transfer from an actor
	// with registered history.
	ErrHistoryExists = &Error{Code: "XFER-HIST-002", Message: "actor already has transfer history"}

	// ErrInsufficientBalance rejects a debit exceeding the actor's balance.
	ErrInsufficientBalance = &Error{Code: "XFER-BAL-001", Message: "insufficient balance"}
)

// Registry is one section's record of transfer agreements for the actors it
// is responsible for. It enforces replay defense on (actor, counter) and the
// per-transfer history restrictions.
//
// Not safe for concurrent use; the caller serializes access.
type Registry struct {
	sectionKey keys.PublicKey
	accounts   map[string]*account
}

type account struct {
	balance  money.Money
	history  []ProofOfAgreement
	incoming []ProofOfAgreement
	counters map[uint64]struct{}
	credited map[string]struct{}
}

// NewRegistry builds a registry whose proofs must verify against sectionKey.
func NewRegistry(sectionKey keys.PublicKey) *Registry {
	return &Registry{
		sectionKey: sectionKey,
		accounts:   make(map[string]*account),
	}
}

func (r *Registry) account(pk keys.PublicKey) *account {
	k := pk.Key()
	a, ok := r.accounts[k]
	if !ok {
		a = &account{
			counters: make(map[uint64]struct{}),
			credited: make(map[string]struct{}),
		}
		r.accounts[k] = a
	}
	return a
}

// Deposit credits an account outside the transfer flow. Used for genesis and
// reward issuance.
func (r *Registry) Deposit(pk keys.PublicKey, amount money.Money) error {
	a := r.account(pk)
	balance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = balance
	return nil
}

// CheckValidation decides whether a section member may sign a validation
// share for cmd: the client signature must verify, the ID must not replay,
// and the restriction must hold against the actor's recorded history.
func (r *Registry) CheckValidation(cmd ValidateTransfer) error {
	if err := cmd.Verify(); err != nil {
		return err
	}
	a, ok := r.accounts[cmd.Transfer.ID.Actor.Key()]
	if ok {
		if _, dup := a.counters[cmd.Transfer.ID.Counter]; dup {
			return ErrTransferReplayed
		}
	}
	hasHistory := ok && len(a.history) > 0
	switch cmd.Transfer.Restriction {
	case RequireHistory:
		if !hasHistory {
			return ErrHistoryRequired
		}
	case ExpectNoHistory:
		if hasHistory {
			return ErrHistoryExists
		}
	case NoRestriction:
	default:
		return fmt.Errorf("transfer: unknown restriction %d", uint8(cmd.Transfer.Restriction))
	}
	return nil
}

// Register records a proof on the debit side: the proof must verify, the ID
// must not replay, and the actor's balance is debited. Rejection never
// mutates state.
func (r *Registry) Register(req RegisterTransfer) (TransferRegistered, error) {
	if err := req.Proof.Verify(r.sectionKey); err != nil {
		return TransferRegistered{}, err
	}
	t := req.Proof.Cmd.Transfer
	a := r.account(t.ID.Actor)
	if _, dup := a.counters[t.ID.Counter]; dup {
		return TransferRegistered{}, ErrTransferReplayed
	}
	balance, err := a.balance.Sub(t.Amount)
	if err != nil {
		return TransferRegistered{}, ErrInsufficientBalance
	}
	a.balance = balance
	a.counters[t.ID.Counter] = struct{}{}
	a.history = append(a.history, req.Proof)
	return TransferRegistered{Proof: req.Proof}, nil
}

// Propagate records a proof on the credit side and credits the recipient.
// The (actor, counter) pair de-duplicates credits the same way it
// de-duplicates debits: a proof already credited to the recipient is
// rejected without mutating state.
func (r *Registry) Propagate(req PropagateTransfer) (TransferNotification, error) {
	if err := req.Proof.Verify(r.sectionKey); err != nil {
		return TransferNotification{}, err
	}
	t := req.Proof.Cmd.Transfer
	a := r.account(t.To)
	id := string(t.ID.CanonicalBytes())
	if _, dup := a.credited[id]; dup {
		return TransferNotification{}, ErrTransferReplayed
	}
	balance, err := a.balance.Add(t.Amount)
	if err != nil {
		return TransferNotification{}, err
	}
	a.balance = balance
	a.credited[id] = struct{}{}
	a.incoming = append(a.incoming, req.Proof)
	return TransferNotification{Proof: req.Proof}, nil
}

// Balance returns the recorded balance for a key.
func (r *Registry) Balance(pk keys.PublicKey) (money.Money, bool) {
	a, ok := r.accounts[pk.Key()]
	if !ok {
		return money.Money{}, false
	}
	return a.balance, true
}

// History returns the actor's registered transfers from sinceVersion on.
func (r *Registry) History(pk keys.PublicKey, sinceVersion uint64) []ProofOfAgreement {
	a, ok := r.accounts[pk.Key()]
	if !ok || sinceVersion >= uint64(len(a.history)) {
		return nil
	}
	out := make([]ProofOfAgreement, len(a.history)-int(sinceVersion))
	copy(out, a.history[sinceVersion:])
	return out
}

// Incoming returns the credits propagated to a key.
func (r *Registry) Incoming(pk keys.PublicKey) []ProofOfAgreement {
	a, ok := r.accounts[pk.Key()]
	if !ok {
		return nil
	}
	out := make([]ProofOfAgreement, len(a.incoming))
	copy(out, a.incoming)
	return out
}
