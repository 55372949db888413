// Package rewards tracks the farming reward a node has accumulated together
// with the work it performed to earn it. The counter travels with the node
// across relocations and is paid out by the section holding its account.
package rewards

import (
	"xdao.co/xordata/canon"
	"xdao.co/xordata/money"
)

// Work measures accumulated effort. It only ever grows.
type Work = uint64

// Counter is a node's unpaid reward and the work backing it. The zero value
// is an empty counter.
type Counter struct {
	Reward money.Money
	Work   Work
}

// Add accumulates one earned reward and the unit of work that produced it,
// returning the grown counter. The input counter is unchanged.
func (c Counter) Add(reward money.Money) (Counter, error) {
	sum, err := c.Reward.Add(reward)
	if err != nil {
		return Counter{}, err
	}
	return Counter{Reward: sum, Work: c.Work + 1}, nil
}

// IsEmpty reports whether nothing has been earned yet.
func (c Counter) IsEmpty() bool {
	return c.Reward.IsZero() && c.Work == 0
}

// CanonicalBytes implements canon.Marshaler.
func (c Counter) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Marshal(c.Reward)
	w.Uint64(c.Work)
	return w.Sum()
}

// DecodeCounter reverses CanonicalBytes.
func DecodeCounter(b []byte) (Counter, error) {
	r := canon.NewReader(b)
	rewardBytes, err := r.Bytes()
	if err != nil {
		return Counter{}, err
	}
	rr := canon.NewReader(rewardBytes)
	nano, err := rr.Uint64()
	if err != nil {
		return Counter{}, err
	}
	if err := rr.Done(); err != nil {
		return Counter{}, err
	}
	work, err := r.Uint64()
	if err != nil {
		return Counter{}, err
	}
	if err := r.Done(); err != nil {
		return Counter{}, err
	}
	return Counter{Reward: money.FromNano(nano), Work: work}, nil
}
