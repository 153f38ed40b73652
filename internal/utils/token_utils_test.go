package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := utils.GenerateJWT("7", "testuser", "secret", time.Hour, "ledger-stub")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "ledger-stub", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("7", "testuser", "secret", -time.Minute, "ledger-stub")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	// Display-only decoding does not care about expiry.
	claims, err := utils.ParseUnverifiedClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "testuser", claims.Username)
}

func TestParseUnverifiedClaims_Opaque(t *testing.T) {
	_, err := utils.ParseUnverifiedClaims("abc")
	assert.Error(t, err)
}
