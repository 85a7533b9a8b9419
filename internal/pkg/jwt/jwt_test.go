package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func TestGenerateAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken(7, "alice", []string{"Employee", "Manager"}, testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"Employee", "Manager"}, claims.Roles)
	assert.Equal(t, "7", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateRefreshToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	token, err := GenerateRefreshToken(7, "alice", testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateAccessToken_ExpiredIsRejected(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken(1, "alice", []string{"Employee"}, testSecret, -1)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_WrongSecretIsRejected(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken(1, "alice", []string{"Employee"}, testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "other-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_GarbageIsRejected(t *testing.T) {
	t.Parallel()

	claims, err := ValidateAccessToken("not.a.token", testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRefreshToken_AccessSecretMismatch(t *testing.T) {
	t.Parallel()

	// a refresh token signed with the access secret must not validate
	// against the refresh secret
	token, err := GenerateRefreshToken(1, "alice", "access-secret", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
