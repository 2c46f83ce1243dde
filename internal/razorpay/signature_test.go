package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

const testSecret = "test-webhook-secret"

func hmacHex(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_test123"}}}}`

	tests := []struct {
		name      string
		body      string
		signature string
		secret    string
		want      bool
	}{
		{
			name:      "valid signature",
			body:      body,
			signature: hmacHex(body, testSecret),
			secret:    testSecret,
			want:      true,
		},
		{
			name:      "empty body signed",
			body:      "",
			signature: hmacHex("", testSecret),
			secret:    testSecret,
			want:      true,
		},
		{
			name:      "bad signature",
			body:      body,
			signature: "bad_sig",
			secret:    testSecret,
			want:      false,
		},
		{
			name:      "empty signature",
			body:      body,
			signature: "",
			secret:    testSecret,
			want:      false,
		},
		{
			name:      "wrong secret",
			body:      body,
			signature: hmacHex(body, "other-secret"),
			secret:    testSecret,
			want:      false,
		},
		{
			name:      "uppercase hex is not accepted",
			body:      body,
			signature: "A" + hmacHex(body, testSecret)[1:],
			secret:    testSecret,
			want:      false,
		},
		{
			name:      "whitespace change in body",
			body:      `{"event": "payment.captured"}`,
			signature: hmacHex(`{"event":"payment.captured"}`, testSecret),
			secret:    testSecret,
			want:      false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := VerifySignature([]byte(tc.body), tc.signature, tc.secret)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerifySignature_SignRoundTrip(t *testing.T) {
	bodies := []string{"", "x", `{"b":2,"a":1}`, "not json at all", "\x00\xff binary"}
	secrets := []string{"", "s", testSecret, "a much longer secret value used for signing"}

	for _, body := range bodies {
		for _, secret := range secrets {
			sig := Sign([]byte(body), secret)
			assert.True(t, VerifySignature([]byte(body), sig, secret), "body=%q secret=%q", body, secret)
			assert.Equal(t, hmacHex(body, secret), sig)
		}
	}
}

func TestVerify(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	assert.NoError(t, Verify(body, Sign(body, testSecret), testSecret))
	assert.ErrorIs(t, Verify(body, "deadbeef", testSecret), domain.ErrInvalidSignature)
	assert.ErrorIs(t, Verify(body, "", testSecret), domain.ErrInvalidSignature)
}
