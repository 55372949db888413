package sequence

import (
	"fmt"
	"sort"

	"xdao.co/xordata/canon"
	"xdao.co/xordata/keys"
)

// Action classifies every request made against a sequence.
type Action uint8

const (
	// ActionRead covers all query-class requests: value reads, range reads,
	// history reads and shell snapshots.
	ActionRead Action = iota
	// ActionAppend covers appending values to the data log.
	ActionAppend
	// ActionManagePermissions covers changing the permission history.
	ActionManagePermissions
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionAppend:
		return "append"
	case ActionManagePermissions:
		return "manage-permissions"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

var allActions = []Action{ActionRead, ActionAppend, ActionManagePermissions}

// PermissionSet records explicit allow/deny clearances per action. Actions
// with no explicit clearance are unset, which matters for the public
// variant's wildcard fallback.
type PermissionSet struct {
	clearances map[Action]bool
}

// NewPermissionSet returns an empty set with every action unset.
func NewPermissionSet() PermissionSet {
	return PermissionSet{clearances: make(map[Action]bool)}
}

// Set records an explicit clearance for an action.
func (s PermissionSet) Set(action Action, allowed bool) PermissionSet {
	if s.clearances == nil {
		s.clearances = make(map[Action]bool)
	}
	s.clearances[action] = allowed
	return s
}

// Clearance reports the explicit clearance for an action and whether one is
// recorded at all.
func (s PermissionSet) Clearance(action Action) (allowed, ok bool) {
	allowed, ok = s.clearances[action]
	return allowed, ok
}

// IsAllowed reports whether the action is explicitly allowed. Unset means
// not allowed.
func (s PermissionSet) IsAllowed(action Action) bool {
	return s.clearances[action]
}

// CanonicalBytes implements canon.Marshaler. Clearances are emitted in
// action-tag order.
func (s PermissionSet) CanonicalBytes() []byte {
	w := canon.NewWriter()
	var n uint32
	for _, a := range allActions {
		if _, ok := s.clearances[a]; ok {
			n++
		}
	}
	w.Uint32(n)
	for _, a := range allActions {
		if allowed, ok := s.clearances[a]; ok {
			w.Tag(uint8(a))
			w.Bool(allowed)
		}
	}
	return w.Sum()
}

// User identifies a subject in a public permission table: either one
// specific key or the Anyone wildcard.
type User struct {
	anyone bool
	key    keys.PublicKey
}

// Anyone is the wildcard user.
func Anyone() User {
	return User{anyone: true}
}

// Specific identifies a single key.
func Specific(pk keys.PublicKey) User {
	return User{key: pk}
}

// IsAnyone reports whether this is the wildcard.
func (u User) IsAnyone() bool {
	return u.anyone
}

// Key returns the specific key, if this is not the wildcard.
func (u User) Key() (keys.PublicKey, bool) {
	if u.anyone {
		return keys.PublicKey{}, false
	}
	return u.key, true
}

const (
	tagUserAnyone   = 0
	tagUserSpecific = 1
)

// CanonicalBytes implements canon.Marshaler.
func (u User) CanonicalBytes() []byte {
	w := canon.NewWriter()
	if u.anyone {
		w.Tag(tagUserAnyone)
	} else {
		w.Tag(tagUserSpecific)
		w.Raw(u.key.CanonicalBytes())
	}
	return w.Sum()
}

func (u User) mapKey() string {
	return string(u.CanonicalBytes())
}

// Permissions is a snapshot in a sequence's permission history. It records
// the data and owner history lengths observed when it was created; SetPermissions
// rejects a snapshot whose recorded lengths have gone stale.
//
// The two implementations, PublicPermissions and PrivatePermissions, form a
// closed set.
type Permissions interface {
	canon.Marshaler

	// ExpectedDataIndex is the data length observed at snapshot time.
	ExpectedDataIndex() uint64
	// ExpectedOwnersIndex is the owner history length observed at snapshot time.
	ExpectedOwnersIndex() uint64
	// IsPermitted evaluates the snapshot's policy for one key and action.
	IsPermitted(user keys.PublicKey, action Action) bool

	isPublic() bool
}

// PublicPermissions is the permission snapshot flavour for public
// sequences. Lookups for a key without an explicit clearance fall back,
// per action, to the Anyone wildcard entry.
type PublicPermissions struct {
	users               map[string]publicEntry
	expectedDataIndex   uint64
	expectedOwnersIndex uint64
}

type publicEntry struct {
	user User
	set  PermissionSet
}

// NewPublicPermissions builds an empty public snapshot recording the given
// observed history lengths.
func NewPublicPermissions(expectedDataIndex, expectedOwnersIndex uint64) *PublicPermissions {
	return &PublicPermissions{
		users:               make(map[string]publicEntry),
		expectedDataIndex:   expectedDataIndex,
		expectedOwnersIndex: expectedOwnersIndex,
	}
}

// SetUser records the permission set for a user, replacing any previous one.
func (p *PublicPermissions) SetUser(user User, set PermissionSet) *PublicPermissions {
	p.users[user.mapKey()] = publicEntry{user: user, set: set}
	return p
}

// UserPermissions returns the explicit set for a user, if present.
func (p *PublicPermissions) UserPermissions(user User) (PermissionSet, bool) {
	e, ok := p.users[user.mapKey()]
	return e.set, ok
}

// ExpectedDataIndex implements Permissions.
func (p *PublicPermissions) ExpectedDataIndex() uint64 { return p.expectedDataIndex }

// ExpectedOwnersIndex implements Permissions.
func (p *PublicPermissions) ExpectedOwnersIndex() uint64 { return p.expectedOwnersIndex }

// IsPermitted implements Permissions. An explicit per-key clearance always
// wins; only when the key has no clearance for the action does the Anyone
// entry decide. Absence everywhere denies.
func (p *PublicPermissions) IsPermitted(user keys.PublicKey, action Action) bool {
	if e, ok := p.users[Specific(user).mapKey()]; ok {
		if allowed, set := e.set.Clearance(action); set {
			return allowed
		}
	}
	if e, ok := p.users[Anyone().mapKey()]; ok {
		if allowed, set := e.set.Clearance(action); set {
			return allowed
		}
	}
	return false
}

const (
	tagPermissionsPublic  = 0
	tagPermissionsPrivate = 1
)

// CanonicalBytes implements canon.Marshaler. Entries are emitted sorted by
// the user's canonical bytes.
func (p *PublicPermissions) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Tag(tagPermissionsPublic)
	w.Uint64(p.expectedDataIndex)
	w.Uint64(p.expectedOwnersIndex)
	ks := make([]string, 0, len(p.users))
	for k := range p.users {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	w.Uint32(uint32(len(ks)))
	for _, k := range ks {
		e := p.users[k]
		w.Bytes(e.user.CanonicalBytes())
		w.Bytes(e.set.CanonicalBytes())
	}
	return w.Sum()
}

func (p *PublicPermissions) isPublic() bool { return true }

// PrivatePermissions is the permission snapshot flavour for private
// sequences. Only specific keys can be listed and there is no wildcard
// fallback: an unlisted key is denied everything.
type PrivatePermissions struct {
	users               map[string]privateEntry
	expectedDataIndex   uint64
	expectedOwnersIndex uint64
}

type privateEntry struct {
	key keys.PublicKey
	set PermissionSet
}

// NewPrivatePermissions builds an empty private snapshot recording the given
// observed history lengths.
func NewPrivatePermissions(expectedDataIndex, expectedOwnersIndex uint64) *PrivatePermissions {
	return &PrivatePermissions{
		users:               make(map[string]privateEntry),
		expectedDataIndex:   expectedDataIndex,
		expectedOwnersIndex: expectedOwnersIndex,
	}
}

// SetUser records the permission set for a key, replacing any previous one.
func (p *PrivatePermissions) SetUser(pk keys.PublicKey, set PermissionSet) *PrivatePermissions {
	p.users[pk.Key()] = privateEntry{key: pk, set: set}
	return p
}

// UserPermissions returns the set for a key, if listed.
func (p *PrivatePermissions) UserPermissions(pk keys.PublicKey) (PermissionSet, bool) {
	e, ok := p.users[pk.Key()]
	return e.set, ok
}

// ExpectedDataIndex implements Permissions.
func (p *PrivatePermissions) ExpectedDataIndex() uint64 { return p.expectedDataIndex }

// ExpectedOwnersIndex implements Permissions.
func (p *PrivatePermissions) ExpectedOwnersIndex() uint64 { return p.expectedOwnersIndex }

// IsPermitted implements Permissions.
func (p *PrivatePermissions) IsPermitted(user keys.PublicKey, action Action) bool {
	e, ok := p.users[user.Key()]
	if !ok {
		return false
	}
	return e.set.IsAllowed(action)
}

// CanonicalBytes implements canon.Marshaler. Entries are emitted sorted by
// the key's canonical bytes.
func (p *PrivatePermissions) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Tag(tagPermissionsPrivate)
	w.Uint64(p.expectedDataIndex)
	w.Uint64(p.expectedOwnersIndex)
	ks := make([]string, 0, len(p.users))
	for k := range p.users {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	w.Uint32(uint32(len(ks)))
	for _, k := range ks {
		e := p.users[k]
		w.Bytes(e.key.CanonicalBytes())
		w.Bytes(e.set.CanonicalBytes())
	}
	return w.Sum()
}

func (p *PrivatePermissions) isPublic() bool { return false }
