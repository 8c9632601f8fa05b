package password_test

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"go-inventory/internal/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, password.Verify(hash, "secret123"))
	assert.ErrorIs(t, password.Verify(hash, "wrong"), password.ErrMismatch)
	assert.False(t, password.NeedsRehash(hash))
}

func TestVerifyLegacyDigest(t *testing.T) {
	sum := sha256.Sum256([]byte("123456"))
	legacy := base64.StdEncoding.EncodeToString(sum[:])

	assert.NoError(t, password.Verify(legacy, "123456"))
	assert.ErrorIs(t, password.Verify(legacy, "654321"), password.ErrMismatch)
	assert.True(t, password.NeedsRehash(legacy))
}
