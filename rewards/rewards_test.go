package rewards

import (
	"testing"

	"xdao.co/xordata/money"
)

func TestCounterAccumulates(t *testing.T) {
	var c Counter
	if !c.IsEmpty() {
		t.Fatalf("zero counter not empty")
	}

	c, err := c.Add(money.FromNano(10))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	c, err = c.Add(money.FromNano(5))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.Reward.Nano() != 15 || c.Work != 2 {
		t.Fatalf("counter = %+v", c)
	}
	if c.IsEmpty() {
		t.Fatalf("grown counter reported empty")
	}
}

func TestCounterRoundTrip(t *testing.T) {
	c := Counter{Reward: money.FromNano(123_456_789), Work: 42}
	decoded, err := DecodeCounter(c.CanonicalBytes())
	if err != nil {
		t.Fatalf("DecodeCounter: %v", err)
	}
	if decoded != c {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, c)
	}
	if _, err := DecodeCounter([]byte{1, 2, 3}); err == nil {
		t.Fatalf("truncated input decoded")
	}
}
