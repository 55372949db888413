// Package sequence implements the versioned permissioned append-only log.
//
// A sequence couples three append-only histories under one address: the
// value log, the owner history, and the permission history. Mutations are
// causal: every owner or permission entry records the history lengths it was
// built against, and a mutation whose recorded lengths have gone stale is
// rejected without touching any history. The four variants (public/private
// crossed with sentried/non-sentried) share this one type; the Kind field on
// the address selects the policy at each operation.
package sequence

import (
	"fmt"

	"xdao.co/xordata/canon"
	"xdao.co/xordata/keys"
	"xdao.co/xordata/xorname"
)

// DataEntry pairs a value with its position in the data log.
type DataEntry struct {
	Index uint64
	Value []byte
}

// ExpectedIndices is the current length of each of the three histories,
// the values a caller must echo back in its next mutation.
type ExpectedIndices struct {
	Data        uint64
	Owners      uint64
	Permissions uint64
}

// Sequence is the versioned permissioned log. Not safe for concurrent
// mutation; the caller serializes writes per address.
type Sequence struct {
	address     Address
	data        [][]byte
	owners      []Owner
	permissions []Permissions
}

// New creates an empty sequence of the given kind.
func New(kind Kind, name xorname.Name, tag uint64) (*Sequence, error) {
	addr, err := NewAddress(kind, name, tag)
	if err != nil {
		return nil, err
	}
	return &Sequence{address: addr}, nil
}

// Address returns the sequence's address.
func (s *Sequence) Address() Address { return s.address }

// Kind returns the variant selector.
func (s *Sequence) Kind() Kind { return s.address.Kind() }

// Name returns the XOR name.
func (s *Sequence) Name() xorname.Name { return s.address.Name() }

// Tag returns the type discriminator.
func (s *Sequence) Tag() uint64 { return s.address.Tag() }

// ExpectedDataIndex is the current data length, the index the next append
// must name on sentried kinds.
func (s *Sequence) ExpectedDataIndex() uint64 { return uint64(len(s.data)) }

// ExpectedOwnersIndex is the current owner history length.
func (s *Sequence) ExpectedOwnersIndex() uint64 { return uint64(len(s.owners)) }

// ExpectedPermissionsIndex is the current permission history length.
func (s *Sequence) ExpectedPermissionsIndex() uint64 { return uint64(len(s.permissions)) }

// Indices returns all three history lengths at once.
func (s *Sequence) Indices() ExpectedIndices {
	return ExpectedIndices{
		Data:        s.ExpectedDataIndex(),
		Owners:      s.ExpectedOwnersIndex(),
		Permissions: s.ExpectedPermissionsIndex(),
	}
}

// Append extends the data log on a non-sentried sequence. On sentried kinds
// it fails with ErrExpectedIndexRequired; use AppendExpecting there.
func (s *Sequence) Append(values ...[]byte) error {
	if s.Kind().IsSentried() {
		return ErrExpectedIndexRequired
	}
	s.data = append(s.data, values...)
	return nil
}

// AppendExpecting extends the data log, requiring expectedIndex to equal the
// current data length. Nothing is applied on mismatch.
func (s *Sequence) AppendExpecting(expectedIndex uint64, values ...[]byte) error {
	if expectedIndex != s.ExpectedDataIndex() {
		return errSuccessor(SuccessorData, s.ExpectedDataIndex())
	}
	s.data = append(s.data, values...)
	return nil
}

// SetOwner appends one owner entry. The entry's recorded history lengths and
// the supplied index must all equal the current lengths; the first mismatch
// is reported and nothing changes.
func (s *Sequence) SetOwner(owner Owner, index uint64) error {
	if owner.ExpectedDataIndex != s.ExpectedDataIndex() {
		return errSuccessor(SuccessorData, s.ExpectedDataIndex())
	}
	if owner.ExpectedPermissionsIndex != s.ExpectedPermissionsIndex() {
		return errSuccessor(SuccessorPermissions, s.ExpectedPermissionsIndex())
	}
	if index != s.ExpectedOwnersIndex() {
		return errSuccessor(SuccessorOwners, s.ExpectedOwnersIndex())
	}
	s.owners = append(s.owners, owner)
	return nil
}

// SetPermissions appends one permission snapshot. The snapshot's visibility
// must match the sequence kind, and its recorded history lengths plus the
// supplied index must all equal the current lengths. Nothing changes on
// rejection.
func (s *Sequence) SetPermissions(p Permissions, index uint64) error {
	if p.isPublic() != s.Kind().IsPublic() {
		return ErrPermissionsVisibilityMismatch
	}
	if p.ExpectedDataIndex() != s.ExpectedDataIndex() {
		return errSuccessor(SuccessorData, s.ExpectedDataIndex())
	}
	if p.ExpectedOwnersIndex() != s.ExpectedOwnersIndex() {
		return errSuccessor(SuccessorOwners, s.ExpectedOwnersIndex())
	}
	if index != s.ExpectedPermissionsIndex() {
		return errSuccessor(SuccessorPermissions, s.ExpectedPermissionsIndex())
	}
	s.permissions = append(s.permissions, p)
	return nil
}

// IsPermitted decides whether user may perform action. Public kinds grant
// every read unconditionally. The latest owner is granted everything on
// their own data. Otherwise only the latest permission snapshot is
// consulted; with no snapshot, deny.
func (s *Sequence) IsPermitted(user keys.PublicKey, action Action) bool {
	if s.Kind().IsPublic() && action == ActionRead {
		return true
	}
	if s.IsOwner(user) {
		return true
	}
	p, ok := s.PermissionsAt(FromEnd(1))
	if !ok {
		return false
	}
	return p.IsPermitted(user, action)
}

// IsOwner reports whether user is the latest owner.
func (s *Sequence) IsOwner(user keys.PublicKey) bool {
	o, ok := s.OwnerAt(FromEnd(1))
	return ok && o.PublicKey.Equal(user)
}

// Get returns the value at an index of the data log.
func (s *Sequence) Get(index Index) ([]byte, bool) {
	i, ok := index.Resolve(uint64(len(s.data)))
	if !ok || i >= uint64(len(s.data)) {
		return nil, false
	}
	return s.data[i], true
}

// CurrentDataEntry returns the latest value together with its position.
func (s *Sequence) CurrentDataEntry() (DataEntry, bool) {
	if len(s.data) == 0 {
		return DataEntry{}, false
	}
	return DataEntry{Index: uint64(len(s.data) - 1), Value: s.data[len(s.data)-1]}, true
}

// InRange returns the values in [start, end). Unresolvable bounds report
// false; an empty range reports an empty slice and true.
func (s *Sequence) InRange(start, end Index) ([][]byte, bool) {
	lo, hi, ok := ResolveRange(start, end, uint64(len(s.data)))
	if !ok {
		return nil, false
	}
	out := make([][]byte, hi-lo)
	copy(out, s.data[lo:hi])
	return out, true
}

// Values returns a copy of the whole data log.
func (s *Sequence) Values() [][]byte {
	out := make([][]byte, len(s.data))
	copy(out, s.data)
	return out
}

// OwnerAt returns the owner entry at an index of the owner history.
func (s *Sequence) OwnerAt(index Index) (Owner, bool) {
	i, ok := index.Resolve(uint64(len(s.owners)))
	if !ok || i >= uint64(len(s.owners)) {
		return Owner{}, false
	}
	return s.owners[i], true
}

// OwnerHistoryRange returns the owner entries in [start, end).
func (s *Sequence) OwnerHistoryRange(start, end Index) ([]Owner, bool) {
	lo, hi, ok := ResolveRange(start, end, uint64(len(s.owners)))
	if !ok {
		return nil, false
	}
	out := make([]Owner, hi-lo)
	copy(out, s.owners[lo:hi])
	return out, true
}

// PermissionsAt returns the permission snapshot at an index of the
// permission history.
func (s *Sequence) PermissionsAt(index Index) (Permissions, bool) {
	i, ok := index.Resolve(uint64(len(s.permissions)))
	if !ok || i >= uint64(len(s.permissions)) {
		return nil, false
	}
	return s.permissions[i], true
}

// PermissionsHistoryRange returns the permission snapshots in [start, end).
func (s *Sequence) PermissionsHistoryRange(start, end Index) ([]Permissions, bool) {
	lo, hi, ok := ResolveRange(start, end, uint64(len(s.permissions)))
	if !ok {
		return nil, false
	}
	out := make([]Permissions, hi-lo)
	copy(out, s.permissions[lo:hi])
	return out, true
}

// Shell returns a metadata-only snapshot of the sequence as of a historical
// data version: the value log is emptied and the owner and permission
// histories keep only the entries created against a data length at or below
// the resolved target.
func (s *Sequence) Shell(asOf Index) (*Sequence, error) {
	target, ok := asOf.Resolve(s.ExpectedDataIndex())
	if !ok {
		return nil, ErrNoSuchEntry
	}
	shell := &Sequence{address: s.address}
	for _, o := range s.owners {
		if o.ExpectedDataIndex <= target {
			shell.owners = append(shell.owners, o)
		}
	}
	for _, p := range s.permissions {
		if p.ExpectedDataIndex() <= target {
			shell.permissions = append(shell.permissions, p)
		}
	}
	return shell, nil
}

// CanonicalBytes implements canon.Marshaler over the full state: address,
// data log, owner history, permission history.
func (s *Sequence) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Raw(s.address.CanonicalBytes())
	w.Uint32(uint32(len(s.data)))
	for _, v := range s.data {
		w.Bytes(v)
	}
	w.Uint32(uint32(len(s.owners)))
	for _, o := range s.owners {
		w.Bytes(o.CanonicalBytes())
	}
	w.Uint32(uint32(len(s.permissions)))
	for _, p := range s.permissions {
		w.Bytes(p.CanonicalBytes())
	}
	return w.Sum()
}

func (s *Sequence) String() string {
	return fmt.Sprintf("Sequence(%s, len=%d)", s.address, len(s.data))
}
