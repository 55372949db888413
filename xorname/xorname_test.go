package xorname

import (
	"testing"
)

func TestBase58RoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		name := Random()
		decoded, err := DecodeBase58(name.EncodeBase58())
		if err != nil {
			t.Fatalf("DecodeBase58: %v", err)
		}
		if decoded != name {
			t.Fatalf("round trip mismatch: got %v want %v", decoded, name)
		}
	}
}

func TestFromBytes_WrongLength(t *testing.T) {
	if _, err := FromBytes(make([]byte, Size-1)); err == nil {
		t.Fatalf("expected error for short input")
	}
	if _, err := FromBytes(make([]byte, Size+1)); err == nil {
		t.Fatalf("expected error for long input")
	}
}

func TestFromPrefix(t *testing.T) {
	wide := make([]byte, 48)
	for i := range wide {
		wide[i] = byte(i)
	}
	n, err := FromPrefix(wide)
	if err != nil {
		t.Fatalf("FromPrefix: %v", err)
	}
	for i := 0; i < Size; i++ {
		if n[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d", i, n[i], i)
		}
	}
	if _, err := FromPrefix(make([]byte, Size-1)); err == nil {
		t.Fatalf("expected error for short input")
	}
}

func TestDistanceAndCloserTo(t *testing.T) {
	var zero, one, two Name
	one[Size-1] = 1
	two[Size-1] = 2

	if zero.Distance(zero) != (Name{}) {
		t.Fatalf("distance to self must be zero")
	}
	if d := one.Distance(two); d[Size-1] != 3 {
		t.Fatalf("distance = %d, want 3", d[Size-1])
	}
	if !one.CloserTo(zero, two) {
		t.Fatalf("1 is closer to 0 than 2 is")
	}
	if one.CloserTo(zero, one) {
		t.Fatalf("CloserTo must be strict")
	}
}

func TestCompare(t *testing.T) {
	var a, b Name
	b[0] = 1
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Fatalf("compare ordering broken")
	}
}
