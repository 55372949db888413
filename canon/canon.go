// Package canon provides the canonical byte encoding shared by every
// structure in this module.
//
// Contract:
//   - Identical logical values MUST encode to identical bytes.
//   - The encoding is injective: distinct logical values encode to distinct
//     bytes. Variable-length fields carry a fixed-width length prefix and
//     variants carry a one-byte tag, so no two encodings can collide by
//     concatenation.
//   - Signatures are produced and verified over these bytes, and keys are
//     ordered and hashed by them, so the framing here is a wire contract and
//     must not change.
package canon

import (
	"bytes"
	"encoding/binary"
)

// Marshaler is implemented by every structure with a canonical byte encoding.
//
// Implementations must be pure: two calls on the same logical value return
// identical bytes.
type Marshaler interface {
	CanonicalBytes() []byte
}

// Writer accumulates a canonical encoding.
//
// All integers are big-endian and fixed width. Byte strings are prefixed by
// a uint32 length. Variant tags occupy exactly one byte.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

// Tag writes a one-byte variant discriminator.
func (w *Writer) Tag(t uint8) {
	w.buf.WriteByte(t)
}

func (w *Writer) Bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// Bytes writes a length-prefixed byte string.
func (w *Writer) Bytes(b []byte) {
	w.Uint32(uint32(len(b)))
	w.buf.Write(b)
}

// Raw writes b with no length prefix. Use only for fields whose width is
// fixed by the enclosing structure (hashes, names, compressed points).
func (w *Writer) Raw(b []byte) {
	w.buf.Write(b)
}

func (w *Writer) String(s string) {
	w.Bytes([]byte(s))
}

// Marshal writes a nested structure, length-prefixed.
func (w *Writer) Marshal(m Marshaler) {
	w.Bytes(m.CanonicalBytes())
}

// Sum returns the accumulated encoding.
func (w *Writer) Sum() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out
}

// Compare orders two values by their canonical bytes. The order is total and
// consistent with equality of canonical bytes.
func Compare(a, b Marshaler) int {
	return bytes.Compare(a.CanonicalBytes(), b.CanonicalBytes())
}

// Equal reports canonical-byte equality.
func Equal(a, b Marshaler) bool {
	return bytes.Equal(a.CanonicalBytes(), b.CanonicalBytes())
}
