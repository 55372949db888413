// Package xorname defines the fixed-width identifier used to place data and
// actors in XOR space.
//
// The distance between two names is their bitwise XOR, interpreted as an
// unsigned big-endian integer. Responsibility for a name belongs to the
// network section closest to it under that metric.
package xorname

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the byte length of a Name.
const Size = 32

// Name is a 256-bit number viewed as a point in XOR space.
type Name [Size]byte

// FromBytes builds a Name from exactly Size bytes.
func FromBytes(b []byte) (Name, error) {
	var n Name
	if len(b) != Size {
		return n, fmt.Errorf("xorname: need %d bytes, got %d", Size, len(b))
	}
	copy(n[:], b)
	return n, nil
}

// FromPrefix builds a Name from the first Size bytes of b. Used to project
// wider key material (e.g. compressed BLS points) into XOR space.
func FromPrefix(b []byte) (Name, error) {
	if len(b) < Size {
		return Name{}, fmt.Errorf("xorname: need at least %d bytes, got %d", Size, len(b))
	}
	var n Name
	copy(n[:], b[:Size])
	return n, nil
}

// Random returns a uniformly random Name.
func Random() Name {
	var n Name
	// crypto/rand.Read never returns a short read without an error, and the
	// error only occurs if the platform RNG is broken.
	if _, err := rand.Read(n[:]); err != nil {
		panic("xorname: system RNG unavailable: " + err.Error())
	}
	return n
}

// Distance returns the XOR metric distance to other.
func (n Name) Distance(other Name) Name {
	var d Name
	for i := range n {
		d[i] = n[i] ^ other[i]
	}
	return d
}

// CloserTo reports whether n is strictly closer to target than other is.
func (n Name) CloserTo(target, other Name) bool {
	a := n.Distance(target)
	b := other.Distance(target)
	return bytes.Compare(a[:], b[:]) < 0
}

// Compare orders names as unsigned big-endian integers.
func (n Name) Compare(other Name) int {
	return bytes.Compare(n[:], other[:])
}

// EncodeBase58 returns the name in the base58 display alphabet.
func (n Name) EncodeBase58() string {
	return base58.Encode(n[:])
}

// DecodeBase58 reverses EncodeBase58.
func DecodeBase58(s string) (Name, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Name{}, fmt.Errorf("xorname: %w", err)
	}
	return FromBytes(b)
}

func (n Name) String() string {
	return hex.EncodeToString(n[:4])
}
