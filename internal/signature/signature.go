// Package signature verifies webhook payload signatures using the shared
// secret configured with the upstream form sender.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Verify checks an HMAC-SHA256 hex signature over the raw request body.
//
// An empty secret disables verification and accepts everything, matching
// deployments that never configured signing; callers should log that state
// at startup so it stays visible. With a secret set, a missing signature
// header is rejected outright.
func Verify(secret string, rawBody []byte, signatureHeader string) bool {
	if secret == "" {
		return true
	}
	if signatureHeader == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return timingSafeEqualFold(expected, signatureHeader)
}

// timingSafeEqualFold compares two hex strings case-insensitively in
// constant time. Unequal lengths short-circuit, which leaks only the
// length of the expected digest.
func timingSafeEqualFold(a, b string) bool {
	aBytes := []byte(strings.ToLower(a))
	bBytes := []byte(strings.ToLower(b))
	if len(aBytes) != len(bBytes) {
		return false
	}
	return subtle.ConstantTimeCompare(aBytes, bBytes) == 1
}
