package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Abc12345!")
	require.NoError(t, err)
	require.NotEqual(t, "Abc12345!", hash, "the hash must not be the plaintext")

	assert.True(t, Verify("Abc12345!", hash))
	assert.False(t, Verify("wrong-password", hash))
	assert.False(t, Verify("", hash))
}

func TestDummyHash(t *testing.T) {
	// The dummy hash exists so missing-account logins still pay the bcrypt
	// cost. It must be a well-formed hash that matches nothing we'd accept.
	assert.False(t, Verify("Abc12345!", DummyHash))
	assert.False(t, Verify("", DummyHash))
}
