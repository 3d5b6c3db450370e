package odnoklassniki

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// stateBytes is the entropy behind a generated state value.
const stateBytes = 32

// GenerateState returns a random value to pass to LoginURL through
// WithState. Odnoklassniki echoes it back as the state query parameter of the
// redirect to the registered redirect URI, so the handler can check that
// the callback answers a login this application started. The value is URL
// safe and needs no further escaping.
func GenerateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateState compares the state kept for a login (expected) with the one
// on the redirect (actual) in constant time. A missing value or a mismatch
// is an ErrKindProtocol error; the code on such a redirect must not be passed
// to Authenticate.
func ValidateState(expected, actual string) error {
	if expected == "" || actual == "" {
		return newAPIError(ErrKindProtocol, "state: expected and actual must not be empty", 0, nil)
	}
	// Hashing first keeps the comparison independent of the value lengths.
	e := sha256.Sum256([]byte(expected))
	a := sha256.Sum256([]byte(actual))
	if subtle.ConstantTimeCompare(e[:], a[:]) != 1 {
		return newAPIError(ErrKindProtocol, "state mismatch", 0, nil)
	}
	return nil
}
