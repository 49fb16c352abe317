package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apachemart/pkg/auth"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(7, "Customer")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "Customer", claims.Role)
	assert.Empty(t, claims.Kind)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	refresh, err := auth.GenerateRefreshToken(7, "Customer")
	require.NoError(t, err)

	claims, err := auth.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, auth.KindRefresh, claims.Kind)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	access, err := auth.GenerateToken(7, "Customer")
	require.NoError(t, err)

	_, err = auth.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestGarbageTokenFailsValidation(t *testing.T) {
	_, err := auth.ValidateToken("not.a.jwt")
	assert.Error(t, err)

	_, err = auth.ValidateRefreshToken("")
	assert.Error(t, err)
}
