package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrSignatureMismatch gates order creation for gateway-paid orders: a
// request carrying a bad signature is rejected before anything is persisted.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// ComputeSignature returns the hex HMAC-SHA256 digest of
// "<orderID>|<paymentID>" keyed with secret. This is the signature the
// gateway sends back after a successful capture.
func ComputeSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the expected digest.
// Comparison is constant-time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := ComputeSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
