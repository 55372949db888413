// Package blob implements immutable content-addressed data. A blob's XOR
// name is derived from its content, so a fetched blob can always be checked
// against the address it was requested by. Private blobs bind an owner key
// into the name, giving each owner a distinct address for the same bytes.
package blob

import (
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"xdao.co/xordata/canon"
	"xdao.co/xordata/keys"
	"xdao.co/xordata/xorname"
)

// MaxSize is the largest accepted blob payload.
const MaxSize = 1024 * 1024

// Kind selects blob visibility.
type Kind uint8

const (
	// KindPublic blobs are readable by anyone and live forever.
	KindPublic Kind = iota
	// KindPrivate blobs are readable by their owner and may be deleted.
	KindPrivate
)

func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindPrivate:
		return "private"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Address identifies a blob on the network.
type Address struct {
	kind Kind
	name xorname.Name
}

// NewAddress builds an address from its parts.
func NewAddress(kind Kind, name xorname.Name) (Address, error) {
	if kind > KindPrivate {
		return Address{}, fmt.Errorf("blob: invalid kind %d", uint8(kind))
	}
	return Address{kind: kind, name: name}, nil
}

// Kind returns the visibility selector.
func (a Address) Kind() Kind { return a.kind }

// Name returns the XOR name.
func (a Address) Name() xorname.Name { return a.name }

// CanonicalBytes implements canon.Marshaler.
func (a Address) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Tag(uint8(a.kind))
	w.Raw(a.name[:])
	return w.Sum()
}

// DecodeAddress reverses CanonicalBytes.
func DecodeAddress(b []byte) (Address, error) {
	r := canon.NewReader(b)
	tag, err := r.Tag()
	if err != nil {
		return Address{}, err
	}
	if tag > uint8(KindPrivate) {
		return Address{}, fmt.Errorf("blob: invalid kind %d", tag)
	}
	raw, err := r.Raw(xorname.Size)
	if err != nil {
		return Address{}, err
	}
	name, err := xorname.FromBytes(raw)
	if err != nil {
		return Address{}, err
	}
	if err := r.Done(); err != nil {
		return Address{}, err
	}
	return Address{kind: Kind(tag), name: name}, nil
}

// EncodeBase58 returns the address in the base58 display alphabet.
func (a Address) EncodeBase58() string {
	return base58.Encode(a.CanonicalBytes())
}

// DecodeAddressBase58 reverses EncodeBase58.
func DecodeAddressBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("blob: %w", err)
	}
	return DecodeAddress(b)
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%v", a.kind, a.name)
}

// Blob is an immutable value with a content-derived address. The two
// implementations, Public and Private, form a closed set.
type Blob interface {
	canon.Marshaler

	// Address is where the blob lives.
	Address() Address
	// Name is the content-derived XOR name.
	Name() xorname.Name
	// Value is the payload.
	Value() []byte

	isBlob()
}

func publicName(value []byte) xorname.Name {
	sum := sha3.Sum256(value)
	n, _ := xorname.FromBytes(sum[:])
	return n
}

func privateName(value []byte, owner keys.PublicKey) xorname.Name {
	h := sha3.New256()
	h.Write(value)
	h.Write(owner.CanonicalBytes())
	n, _ := xorname.FromBytes(h.Sum(nil))
	return n
}

// Public is a blob readable by anyone.
type Public struct {
	value []byte
	name  xorname.Name
}

// NewPublic builds a public blob, deriving its name from the payload.
func NewPublic(value []byte) (Public, error) {
	if len(value) > MaxSize {
		return Public{}, fmt.Errorf("blob: payload of %d bytes exceeds the %d byte limit", len(value), MaxSize)
	}
	owned := make([]byte, len(value))
	copy(owned, value)
	return Public{value: owned, name: publicName(owned)}, nil
}

// Address implements Blob.
func (b Public) Address() Address { return Address{kind: KindPublic, name: b.name} }

// Name implements Blob.
func (b Public) Name() xorname.Name { return b.name }

// Value implements Blob.
func (b Public) Value() []byte { return b.value }

func (b Public) isBlob() {}

const (
	tagBlobPublic  = 0
	tagBlobPrivate = 1
)

// CanonicalBytes implements canon.Marshaler.
func (b Public) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Tag(tagBlobPublic)
	w.Bytes(b.value)
	return w.Sum()
}

func (b Public) String() string {
	return fmt.Sprintf("PublicBlob(%v, %d bytes)", b.name, len(b.value))
}

// Private is a blob bound to an owner key.
type Private struct {
	value []byte
	owner keys.PublicKey
	name  xorname.Name
}

// NewPrivate builds a private blob, deriving its name from the payload and
// the owner key.
func NewPrivate(value []byte, owner keys.PublicKey) (Private, error) {
	if len(value) > MaxSize {
		return Private{}, fmt.Errorf("blob: payload of %d bytes exceeds the %d byte limit", len(value), MaxSize)
	}
	owned := make([]byte, len(value))
	copy(owned, value)
	return Private{value: owned, owner: owner, name: privateName(owned, owner)}, nil
}

// Address implements Blob.
func (b Private) Address() Address { return Address{kind: KindPrivate, name: b.name} }

// Name implements Blob.
func (b Private) Name() xorname.Name { return b.name }

// Value implements Blob.
func (b Private) Value() []byte { return b.value }

// Owner is the key the blob is bound to.
func (b Private) Owner() keys.PublicKey { return b.owner }

func (b Private) isBlob() {}

// CanonicalBytes implements canon.Marshaler.
func (b Private) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Tag(tagBlobPrivate)
	w.Bytes(b.value)
	w.Bytes(b.owner.CanonicalBytes())
	return w.Sum()
}

func (b Private) String() string {
	return fmt.Sprintf("PrivateBlob(%v, %d bytes)", b.name, len(b.value))
}

// Decode reverses CanonicalBytes for either blob kind, rederiving the name
// from the decoded content.
func Decode(data []byte) (Blob, error) {
	r := canon.NewReader(data)
	tag, err := r.Tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagBlobPublic:
		value, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		if err := r.Done(); err != nil {
			return nil, err
		}
		return NewPublic(value)
	case tagBlobPrivate:
		value, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		ownerBytes, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		if err := r.Done(); err != nil {
			return nil, err
		}
		owner, err := keys.DecodePublicKey(ownerBytes)
		if err != nil {
			return nil, err
		}
		return NewPrivate(value, owner)
	default:
		return nil, fmt.Errorf("blob: unknown tag %d", tag)
	}
}

// Verify checks that a blob's name matches its content. Useful after
// receiving a blob claimed to live at a given address.
func Verify(b Blob, addr Address) error {
	if b.Address().Kind() != addr.Kind() {
		return fmt.Errorf("blob: kind mismatch: got %s, want %s", b.Address().Kind(), addr.Kind())
	}
	if b.Name() != addr.Name() {
		return fmt.Errorf("blob: content does not match address %v", addr.Name())
	}
	return nil
}
