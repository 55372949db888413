package canon

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrTruncated is returned when a decode runs past the end of input.
	ErrTruncated = errors.New("canon: truncated input")
	// ErrTrailing is returned by Done when undecoded bytes remain.
	ErrTrailing = errors.New("canon: trailing bytes after value")
)

// Reader decodes a canonical encoding produced by Writer.
type Reader struct {
	rest []byte
}

func NewReader(b []byte) *Reader {
	return &Reader{rest: b}
}

func (r *Reader) take(n int) ([]byte, error) {
	if len(r.rest) < n {
		return nil, ErrTruncated
	}
	out := r.rest[:n]
	r.rest = r.rest[n:]
	return out, nil
}

func (r *Reader) Tag() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Bool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.New("canon: invalid bool byte")
	}
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Bytes reads a length-prefixed byte string. The returned slice is a copy.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Raw reads exactly n bytes (a fixed-width field).
func (r *Reader) Raw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Done returns an error unless the input was consumed exactly.
func (r *Reader) Done() error {
	if len(r.rest) != 0 {
		return ErrTrailing
	}
	return nil
}
