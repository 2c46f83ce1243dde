package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

const SignatureHeader = "X-Razorpay-Signature"

// Sign returns the lowercase hex HMAC-SHA256 of body keyed by secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature is the HMAC of the exact bytes
// in body. Callers must pass the body as received, never a re-encoded copy.
func VerifySignature(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(body, secret)), []byte(signature))
}

// Verify is VerifySignature reporting a mismatch as domain.ErrInvalidSignature.
func Verify(body []byte, signature, secret string) error {
	if !VerifySignature(body, signature, secret) {
		return fmt.Errorf("Verify: %w", domain.ErrInvalidSignature)
	}
	return nil
}
