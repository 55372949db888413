// Package money provides a fixed-point token amount with nine decimal
// places, stored as whole nano units in a uint64.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"xdao.co/xordata/canon"
)

// NanoPerUnit is the number of nano parts in one whole unit.
const NanoPerUnit = 1_000_000_000

// Money is an amount in nano units. The zero value is zero money.
type Money struct {
	nano uint64
}

// FromNano builds an amount from whole nano units.
func FromNano(nano uint64) Money {
	return Money{nano: nano}
}

// Nano returns the amount in whole nano units.
func (m Money) Nano() uint64 {
	return m.nano
}

// IsZero reports a zero amount.
func (m Money) IsZero() bool {
	return m.nano == 0
}

// Add returns m + other, or an error on overflow.
func (m Money) Add(other Money) (Money, error) {
	if m.nano > math.MaxUint64-other.nano {
		return Money{}, fmt.Errorf("money: %s + %s overflows", m, other)
	}
	return Money{nano: m.nano + other.nano}, nil
}

// Sub returns m - other, or an error when other exceeds m. Amounts are
// unsigned; there is no negative money.
func (m Money) Sub(other Money) (Money, error) {
	if other.nano > m.nano {
		return Money{}, fmt.Errorf("money: %s - %s underflows", m, other)
	}
	return Money{nano: m.nano - other.nano}, nil
}

// Compare orders amounts numerically.
func (m Money) Compare(other Money) int {
	switch {
	case m.nano < other.nano:
		return -1
	case m.nano > other.nano:
		return 1
	default:
		return 0
	}
}

// CanonicalBytes implements canon.Marshaler.
func (m Money) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Uint64(m.nano)
	return w.Sum()
}

// String formats the amount as a decimal with trailing zeros trimmed,
// e.g. "1.5" or "0.000000001".
func (m Money) String() string {
	units := m.nano / NanoPerUnit
	remainder := m.nano % NanoPerUnit
	if remainder == 0 {
		return strconv.FormatUint(units, 10)
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", remainder), "0")
	return fmt.Sprintf("%d.%s", units, frac)
}

// Parse reads a decimal amount with at most nine fractional digits.
func Parse(s string) (Money, error) {
	whole, frac, found := strings.Cut(s, ".")
	if whole == "" {
		return Money{}, fmt.Errorf("money: cannot parse %q: missing units", s)
	}
	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("money: cannot parse %q: %w", s, err)
	}
	var remainder uint64
	if found {
		if frac == "" || len(frac) > 9 {
			return Money{}, fmt.Errorf("money: cannot parse %q: fraction must have 1 to 9 digits", s)
		}
		remainder, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("money: cannot parse %q: %w", s, err)
		}
		for i := len(frac); i < 9; i++ {
			remainder *= 10
		}
	}
	if units > (math.MaxUint64-remainder)/NanoPerUnit {
		return Money{}, fmt.Errorf("money: %q exceeds the representable range", s)
	}
	return Money{nano: units*NanoPerUnit + remainder}, nil
}
