package sequence

import (
	"fmt"

	"github.com/mr-tron/base58"

	"xdao.co/xordata/canon"
	"xdao.co/xordata/xorname"
)

// Kind selects a sequence variant along two independent axes: visibility
// (public/private) and ordering enforcement (sentried/non-sentried). The
// kind is part of the address and fixed at creation.
type Kind uint8

const (
	KindPublicSentried Kind = iota
	KindPublic
	KindPrivateSentried
	KindPrivate
)

// IsPublic reports public visibility: every read-class request is granted to
// every caller unconditionally.
func (k Kind) IsPublic() bool {
	return k == KindPublicSentried || k == KindPublic
}

// IsPrivate reports private visibility: nothing is granted until an owner
// exists.
func (k Kind) IsPrivate() bool {
	return !k.IsPublic()
}

// IsSentried reports ordering enforcement: appends must name the expected
// next data index.
func (k Kind) IsSentried() bool {
	return k == KindPublicSentried || k == KindPrivateSentried
}

func (k Kind) String() string {
	switch k {
	case KindPublicSentried:
		return "public-sentried"
	case KindPublic:
		return "public"
	case KindPrivateSentried:
		return "private-sentried"
	case KindPrivate:
		return "private"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Address identifies a sequence on the network. Immutable once created.
type Address struct {
	kind Kind
	name xorname.Name
	tag  uint64
}

// NewAddress builds an address from its parts.
func NewAddress(kind Kind, name xorname.Name, tag uint64) (Address, error) {
	if kind > KindPrivate {
		return Address{}, fmt.Errorf("sequence: invalid kind %d", uint8(kind))
	}
	return Address{kind: kind, name: name, tag: tag}, nil
}

// Kind returns the variant selector.
func (a Address) Kind() Kind {
	return a.kind
}

// Name returns the XOR name.
func (a Address) Name() xorname.Name {
	return a.name
}

// Tag returns the type discriminator.
func (a Address) Tag() uint64 {
	return a.tag
}

// CanonicalBytes implements canon.Marshaler.
func (a Address) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Tag(uint8(a.kind))
	w.Raw(a.name[:])
	w.Uint64(a.tag)
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
		return Address{}, fmt.Errorf("sequence: invalid kind %d", tag)
	}
	raw, err := r.Raw(xorname.Size)
	if err != nil {
		return Address{}, err
	}
	name, err := xorname.FromBytes(raw)
	if err != nil {
		return Address{}, err
	}
	typeTag, err := r.Uint64()
	if err != nil {
		return Address{}, err
	}
	if err := r.Done(); err != nil {
		return Address{}, err
	}
	return Address{kind: Kind(tag), name: name, tag: typeTag}, nil
}

// EncodeBase58 returns the address in the base58 display alphabet.
func (a Address) EncodeBase58() string {
	return base58.Encode(a.CanonicalBytes())
}

// DecodeAddressBase58 reverses EncodeBase58.
func DecodeAddressBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("sequence: %w", err)
	}
	return DecodeAddress(b)
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%v:%d", a.kind, a.name, a.tag)
}
