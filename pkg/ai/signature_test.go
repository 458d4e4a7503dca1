package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"title":"Standup"}`)
	sig := SignHMAC("s3cret", payload)

	t.Run("valid", func(t *testing.T) {
		assert.True(t, VerifyHMAC("s3cret", payload, sig))
	})
	t.Run("prefixed", func(t *testing.T) {
		assert.True(t, VerifyHMAC("s3cret", payload, "sha256="+sig))
	})
	t.Run("tampered payload", func(t *testing.T) {
		assert.False(t, VerifyHMAC("s3cret", []byte(`{"title":"Retro"}`), sig))
	})
	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, VerifyHMAC("other", payload, sig))
	})
	t.Run("missing secret or signature", func(t *testing.T) {
		assert.False(t, VerifyHMAC("", payload, sig))
		assert.False(t, VerifyHMAC("s3cret", payload, ""))
		assert.False(t, VerifyHMAC("s3cret", payload, "sha256="))
	})
}
