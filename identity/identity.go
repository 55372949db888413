// Package identity provides the network personas built on the key layer:
// clients, apps acting on a client's behalf, and nodes. A full id holds the
// signing keypair and never leaves its owner; the matching public id is what
// peers see and authenticate against.
package identity

import (
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"xdao.co/xordata/keys"
	"xdao.co/xordata/xorname"
)

// PublicID is the peer-visible half of an identity. Implementations form a
// closed set: client, app, node.
type PublicID interface {
	// PublicKey is the identity's verification key.
	PublicKey() keys.PublicKey
	// Name is the identity's XOR address.
	Name() xorname.Name

	isPublicID()
}

// deriveSeed stretches secret material into an Ed25519 seed. The persona
// label separates key material between identity kinds built from one secret.
func deriveSeed(label string, secret []byte) []byte {
	h := sha3.New256()
	h.Write([]byte(label))
	h.Write(secret)
	return h.Sum(nil)
}

// ClientPublicID identifies a client account.
type ClientPublicID struct {
	key keys.PublicKey
}

// PublicKey implements PublicID.
func (id ClientPublicID) PublicKey() keys.PublicKey { return id.key }

// Name implements PublicID.
func (id ClientPublicID) Name() xorname.Name { return id.key.Name() }

func (id ClientPublicID) isPublicID() {}

func (id ClientPublicID) String() string {
	return fmt.Sprintf("Client(%s)", id.key)
}

// ClientFullID is a client's signing identity.
type ClientFullID struct {
	keypair keys.Keypair
}

// NewClientFullID generates a fresh client identity.
func NewClientFullID(rnd io.Reader) (ClientFullID, error) {
	kp, err := keys.NewEd25519Keypair(rnd)
	if err != nil {
		return ClientFullID{}, err
	}
	return ClientFullID{keypair: kp}, nil
}

// ClientFullIDFromSecret derives a deterministic client identity from secret
// material, for passphrase-based account access.
func ClientFullIDFromSecret(secret []byte) (ClientFullID, error) {
	kp, err := keys.Ed25519KeypairFromSeed(deriveSeed("client", secret))
	if err != nil {
		return ClientFullID{}, err
	}
	return ClientFullID{keypair: kp}, nil
}

// Keypair returns the signing keypair.
func (id ClientFullID) Keypair() keys.Keypair { return id.keypair }

// Sign signs data as this client.
func (id ClientFullID) Sign(data []byte) keys.Signature { return id.keypair.Sign(data) }

// Public returns the peer-visible id.
func (id ClientFullID) Public() ClientPublicID {
	return ClientPublicID{key: id.keypair.PublicKey()}
}

// AppPublicID identifies an app authorized by a client. It carries the
// owner's public id so peers can tie the app back to the account.
type AppPublicID struct {
	key   keys.PublicKey
	owner ClientPublicID
}

// PublicKey implements PublicID.
func (id AppPublicID) PublicKey() keys.PublicKey { return id.key }

// Name implements PublicID.
func (id AppPublicID) Name() xorname.Name { return id.key.Name() }

// Owner is the client that authorized this app.
func (id AppPublicID) Owner() ClientPublicID { return id.owner }

func (id AppPublicID) isPublicID() {}

func (id AppPublicID) String() string {
	return fmt.Sprintf("App(%s, owner: %s)", id.key, id.owner)
}

// AppFullID is an app's signing identity.
type AppFullID struct {
	keypair keys.Keypair
	owner   ClientPublicID
}

// NewAppFullID generates a fresh app identity owned by a client.
func NewAppFullID(rnd io.Reader, owner ClientPublicID) (AppFullID, error) {
	kp, err := keys.NewEd25519Keypair(rnd)
	if err != nil {
		return AppFullID{}, err
	}
	return AppFullID{keypair: kp, owner: owner}, nil
}

// AppFullIDFromSecret derives a deterministic app identity. The app label
// keeps the app key distinct from the client key derived from the same
// secret.
func AppFullIDFromSecret(secret []byte, owner ClientPublicID) (AppFullID, error) {
	kp, err := keys.Ed25519KeypairFromSeed(deriveSeed("app", secret))
	if err != nil {
		return AppFullID{}, err
	}
	return AppFullID{keypair: kp, owner: owner}, nil
}

// Keypair returns the signing keypair.
func (id AppFullID) Keypair() keys.Keypair { return id.keypair }

// Sign signs data as this app.
func (id AppFullID) Sign(data []byte) keys.Signature { return id.keypair.Sign(data) }

// Public returns the peer-visible id.
func (id AppFullID) Public() AppPublicID {
	return AppPublicID{key: id.keypair.PublicKey(), owner: id.owner}
}

// NodePublicID identifies an infrastructure node.
type NodePublicID struct {
	key keys.PublicKey
}

// PublicKey implements PublicID.
func (id NodePublicID) PublicKey() keys.PublicKey { return id.key }

// Name implements PublicID.
func (id NodePublicID) Name() xorname.Name { return id.key.Name() }

func (id NodePublicID) isPublicID() {}

func (id NodePublicID) String() string {
	return fmt.Sprintf("Node(%s)", id.key)
}

// NodeFullID is a node's signing identity.
type NodeFullID struct {
	keypair keys.Keypair
}

// NewNodeFullID generates a fresh node identity.
func NewNodeFullID(rnd io.Reader) (NodeFullID, error) {
	kp, err := keys.NewEd25519Keypair(rnd)
	if err != nil {
		return NodeFullID{}, err
	}
	return NodeFullID{keypair: kp}, nil
}

// Keypair returns the signing keypair.
func (id NodeFullID) Keypair() keys.Keypair { return id.keypair }

// Sign signs data as this node.
func (id NodeFullID) Sign(data []byte) keys.Signature { return id.keypair.Sign(data) }

// Public returns the peer-visible id.
func (id NodeFullID) Public() NodePublicID {
	return NodePublicID{key: id.keypair.PublicKey()}
}
