package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGross(t *testing.T) {
	assert.Equal(t, "500000.00", FormatGross(50000000))
	assert.Equal(t, "0.00", FormatGross(0))
	assert.Equal(t, "1234.56", FormatGross(123456))
	assert.Equal(t, "10.05", FormatGross(1005))
}

func TestVerifySignature(t *testing.T) {
	serverKey := "SB-Mid-server-test"
	orderID := "order-123"
	statusCode := "200"
	gross := "500000.00"

	sig := Signature(orderID, statusCode, gross, serverKey)
	assert.True(t, VerifySignature(orderID, statusCode, gross, serverKey, sig))
}

func TestVerifySignature_TamperedFields(t *testing.T) {
	serverKey := "SB-Mid-server-test"
	sig := Signature("order-123", "200", "500000.00", serverKey)

	// Mutating any signed field without recomputing the key must fail.
	assert.False(t, VerifySignature("order-124", "200", "500000.00", serverKey, sig))
	assert.False(t, VerifySignature("order-123", "201", "500000.00", serverKey, sig))
	assert.False(t, VerifySignature("order-123", "200", "500001.00", serverKey, sig))
	assert.False(t, VerifySignature("order-123", "200", "500000.00", "other-key", sig))
}

func TestVerifySignature_EmptySignature(t *testing.T) {
	assert.False(t, VerifySignature("order-123", "200", "500000.00", "key", ""))
}
