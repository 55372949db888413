package sequence

// Index is a position relative to either end of a growing collection.
//
// FromStart(0) is the first entry; FromEnd(0) is one past the last entry, so
// FromEnd(0) as a range end means "up to the current length".
type Index struct {
	fromEnd bool
	offset  uint64
}

// FromStart addresses offset n from the front.
func FromStart(n uint64) Index {
	return Index{offset: n}
}

// FromEnd addresses offset n back from the current length.
func FromEnd(n uint64) Index {
	return Index{fromEnd: true, offset: n}
}

// Resolve translates the index against a collection length. It reports false
// when the offset exceeds the length; there is no wraparound.
func (i Index) Resolve(length uint64) (uint64, bool) {
	if i.offset > length {
		return 0, false
	}
	if i.fromEnd {
		return length - i.offset, true
	}
	return i.offset, true
}

// ResolveRange translates a [start, end) pair against a collection length.
// Both bounds must resolve and start must not exceed end; equal bounds yield
// a valid empty range.
func ResolveRange(start, end Index, length uint64) (lo, hi uint64, ok bool) {
	lo, ok = start.Resolve(length)
	if !ok {
		return 0, 0, false
	}
	hi, ok = end.Resolve(length)
	if !ok {
		return 0, 0, false
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}
