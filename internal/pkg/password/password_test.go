package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("pw123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123", hash)

	assert.True(t, Verify("pw123", hash))
	assert.False(t, Verify("pw124", hash))
	assert.False(t, Verify("", hash))
}

func TestHash_SaltIsPerPassword(t *testing.T) {
	t.Parallel()

	h1, err := Hash("pw123")
	require.NoError(t, err)
	h2, err := Hash("pw123")
	require.NoError(t, err)

	// same password, different salts, different hashes
	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("pw123", h1))
	assert.True(t, Verify("pw123", h2))
}
