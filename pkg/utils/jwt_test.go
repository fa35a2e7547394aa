package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestGenerateValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", "brand", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "brand", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", "brand", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", "brand", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, token)
	assert.Error(t, err)
}

func TestConnectStateRoundTrip(t *testing.T) {
	state, err := GenerateConnectState(testSecret, "17", "facebook")
	require.NoError(t, err)

	claims, err := ValidateConnectState(testSecret, state)
	require.NoError(t, err)
	assert.Equal(t, "17", claims.PartnerID)
	assert.Equal(t, "facebook", claims.Platform)
	assert.NotEmpty(t, claims.Nonce)
}

func TestConnectStateRejectsForgedState(t *testing.T) {
	state, err := GenerateConnectState("attacker-secret", "17", "facebook")
	require.NoError(t, err)

	_, err = ValidateConnectState(testSecret, state)
	assert.Error(t, err)
}

func TestConnectStateRejectsArbitraryString(t *testing.T) {
	_, err := ValidateConnectState(testSecret, "not-a-state")
	assert.Error(t, err)
}

func TestConnectStateNotInterchangeableWithSession(t *testing.T) {
	// A session token must not pass as an OAuth state even under the same key.
	token, err := GenerateToken(testSecret, "42", "brand", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateConnectState(testSecret, token)
	if err == nil {
		assert.Empty(t, claims.PartnerID)
	}
}
