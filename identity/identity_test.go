package identity

import (
	"crypto/rand"
	"testing"
)

func TestDeterministicDerivation(t *testing.T) {
	secret := []byte("correct horse battery staple")

	a, err := ClientFullIDFromSecret(secret)
	if err != nil {
		t.Fatalf("ClientFullIDFromSecret: %v", err)
	}
	b, err := ClientFullIDFromSecret(secret)
	if err != nil {
		t.Fatalf("ClientFullIDFromSecret: %v", err)
	}
	if !a.Public().PublicKey().Equal(b.Public().PublicKey()) {
		t.Fatalf("same secret derived different client keys")
	}

	other, err := ClientFullIDFromSecret([]byte("different secret"))
	if err != nil {
		t.Fatalf("ClientFullIDFromSecret: %v", err)
	}
	if a.Public().PublicKey().Equal(other.Public().PublicKey()) {
		t.Fatalf("different secrets derived the same key")
	}

	// The persona label separates the app key from the client key.
	app, err := AppFullIDFromSecret(secret, a.Public())
	if err != nil {
		t.Fatalf("AppFullIDFromSecret: %v", err)
	}
	if app.Public().PublicKey().Equal(a.Public().PublicKey()) {
		t.Fatalf("app key equals client key for the same secret")
	}
}

func TestSignaturesVerifyAgainstPublicID(t *testing.T) {
	client, err := NewClientFullID(rand.Reader)
	if err != nil {
		t.Fatalf("NewClientFullID: %v", err)
	}
	app, err := NewAppFullID(rand.Reader, client.Public())
	if err != nil {
		t.Fatalf("NewAppFullID: %v", err)
	}
	node, err := NewNodeFullID(rand.Reader)
	if err != nil {
		t.Fatalf("NewNodeFullID: %v", err)
	}

	msg := []byte("authenticate me")
	if err := client.Public().PublicKey().Verify(client.Sign(msg), msg); err != nil {
		t.Fatalf("client: %v", err)
	}
	if err := app.Public().PublicKey().Verify(app.Sign(msg), msg); err != nil {
		t.Fatalf("app: %v", err)
	}
	if err := node.Public().PublicKey().Verify(node.Sign(msg), msg); err != nil {
		t.Fatalf("node: %v", err)
	}
	if !app.Public().Owner().PublicKey().Equal(client.Public().PublicKey()) {
		t.Fatalf("app owner does not match client")
	}
}

func TestNamesAreKeyProjections(t *testing.T) {
	client, err := NewClientFullID(rand.Reader)
	if err != nil {
		t.Fatalf("NewClientFullID: %v", err)
	}
	pub := client.Public()
	if pub.Name() != pub.PublicKey().Name() {
		t.Fatalf("name is not the key's XOR projection")
	}
	var id PublicID = pub
	if id.Name() != pub.Name() {
		t.Fatalf("interface dispatch changed the name")
	}
}
