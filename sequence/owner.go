package sequence

import (
	"xdao.co/xordata/canon"
	"xdao.co/xordata/keys"
)

// Owner is one entry in a sequence's owner history. Like a permission
// snapshot it records the history lengths observed when it was created, and
// SetOwner rejects it if those have gone stale.
type Owner struct {
	PublicKey                keys.PublicKey
	ExpectedDataIndex        uint64
	ExpectedPermissionsIndex uint64
}

// CanonicalBytes implements canon.Marshaler.
func (o Owner) CanonicalBytes() []byte {
	w := canon.NewWriter()
	w.Bytes(o.PublicKey.CanonicalBytes())
	w.Uint64(o.ExpectedDataIndex)
	w.Uint64(o.ExpectedPermissionsIndex)
	return w.Sum()
}
