package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// FormatGross renders a minor-unit amount the way the gateway reports it,
// e.g. 50000000 -> "500000.00". Webhook signatures are computed over this
// exact representation, so it must match byte for byte.
func FormatGross(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// Signature computes the gateway notification signature:
// sha512 over the concatenation of order id, status code, gross amount and
// the merchant server key, hex encoded.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature reports whether a notification's signature_key matches the
// recomputed digest.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	return Signature(orderID, statusCode, grossAmount, serverKey) == signatureKey
}
