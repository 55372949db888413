package money

import (
	"math"
	"testing"
)

func TestParseAndFormat(t *testing.T) {
	cases := []struct {
		in   string
		nano uint64
		out  string
	}{
		{"0", 0, "0"},
		{"1", NanoPerUnit, "1"},
		{"1.5", 1_500_000_000, "1.5"},
		{"0.000000001", 1, "0.000000001"},
		{"123.456789", 123_456_789_000, "123.456789"},
		{"1.000000000", NanoPerUnit, "1"},
	}
	for _, c := range cases {
		m, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if m.Nano() != c.nano {
			t.Fatalf("Parse(%q) = %d nano, want %d", c.in, m.Nano(), c.nano)
		}
		if m.String() != c.out {
			t.Fatalf("String of %q = %q, want %q", c.in, m.String(), c.out)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, s := range []string{"", ".", ".5", "1.", "1.0000000001", "-1", "abc", "1.2e3", "99999999999999999999"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) accepted", s)
		}
	}
}

func TestCheckedArithmetic(t *testing.T) {
	a := FromNano(100)
	b := FromNano(30)
	sum, err := a.Add(b)
	if err != nil || sum.Nano() != 130 {
		t.Fatalf("Add = %v, %v", sum, err)
	}
	diff, err := a.Sub(b)
	if err != nil || diff.Nano() != 70 {
		t.Fatalf("Sub = %v, %v", diff, err)
	}
	if _, err := b.Sub(a); err == nil {
		t.Fatalf("underflow accepted")
	}
	if _, err := FromNano(math.MaxUint64).Add(FromNano(1)); err == nil {
		t.Fatalf("overflow accepted")
	}
}

func TestCompare(t *testing.T) {
	if FromNano(1).Compare(FromNano(2)) != -1 ||
		FromNano(2).Compare(FromNano(1)) != 1 ||
		FromNano(2).Compare(FromNano(2)) != 0 {
		t.Fatalf("compare ordering wrong")
	}
}
