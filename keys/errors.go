package keys

// Error is the package's structured error type. Code is a stable identifier
// for programmatic handling; Message is for humans and must not be matched on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func newError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

var (
	// ErrSigningKeyTypeMismatch is returned when a key and a signature name
	// different schemes. Detected before any cryptography runs.
	ErrSigningKeyTypeMismatch = newError("KEYS-SCHEME-001", "key and signature use different signing schemes")

	// ErrInvalidSignature is returned on cryptographic verification failure.
	ErrInvalidSignature = newError("KEYS-SIG-001", "signature invalid")
)
