package sequence

import "testing"

func TestIndexResolve(t *testing.T) {
	cases := []struct {
		name   string
		index  Index
		length uint64
		want   uint64
		ok     bool
	}{
		{"start zero", FromStart(0), 4, 0, true},
		{"start middle", FromStart(2), 4, 2, true},
		{"start at length", FromStart(4), 4, 4, true},
		{"start past length", FromStart(5), 4, 0, false},
		{"end zero", FromEnd(0), 4, 4, true},
		{"end one", FromEnd(1), 4, 3, true},
		{"end whole", FromEnd(4), 4, 0, true},
		{"end underflow", FromEnd(5), 4, 0, false},
		{"empty start", FromStart(0), 0, 0, true},
		{"empty end", FromEnd(0), 0, 0, true},
		{"empty past", FromEnd(1), 0, 0, false},
	}
	for _, c := range cases {
		got, ok := c.index.Resolve(c.length)
		if ok != c.ok || got != c.want {
			t.Errorf("%s: Resolve = %d, %v; want %d, %v", c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestResolveRange(t *testing.T) {
	if lo, hi, ok := ResolveRange(FromStart(0), FromStart(2), 4); !ok || lo != 0 || hi != 2 {
		t.Fatalf("ResolveRange = %d, %d, %v", lo, hi, ok)
	}
	if lo, hi, ok := ResolveRange(FromEnd(4), FromEnd(0), 4); !ok || lo != 0 || hi != 4 {
		t.Fatalf("ResolveRange from end = %d, %d, %v", lo, hi, ok)
	}
	// Equal bounds are a valid empty range.
	if lo, hi, ok := ResolveRange(FromStart(2), FromStart(2), 4); !ok || lo != hi {
		t.Fatalf("empty range = %d, %d, %v", lo, hi, ok)
	}
	if _, _, ok := ResolveRange(FromStart(1), FromStart(0), 4); ok {
		t.Fatalf("start past end resolved")
	}
	if _, _, ok := ResolveRange(FromStart(0), FromStart(5), 4); ok {
		t.Fatalf("overflowing end resolved")
	}
}
