package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()

	payload := `{"provider":"stripe","status":"UNHEALTHY"}`
	sig := svc.Sign("secret-key", payload)

	assert.NotEmpty(t, sig)
	assert.Len(t, sig, 64, "hex-encoded SHA256 is 64 chars")
	assert.True(t, svc.Verify("secret-key", payload, sig))
}

func TestHMACSignatureService_Verify_WrongKey(t *testing.T) {
	svc := NewHMACSignatureService()

	sig := svc.Sign("key-1", "payload")
	assert.False(t, svc.Verify("key-2", "payload", sig))
}

func TestHMACSignatureService_Verify_TamperedPayload(t *testing.T) {
	svc := NewHMACSignatureService()

	sig := svc.Sign("key", "payload")
	assert.False(t, svc.Verify("key", "payload-tampered", sig))
}

func TestHMACSignatureService_Deterministic(t *testing.T) {
	svc := NewHMACSignatureService()

	assert.Equal(t, svc.Sign("key", "payload"), svc.Sign("key", "payload"))
}
