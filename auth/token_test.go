package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("segredo", time.Hour)

	token, err := svc.Generate("uid-1", "a@x.com", "A")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "A", claims.Username)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := NewTokenService("segredo", -time.Minute)

	token, err := svc.Generate("uid-1", "a@x.com", "A")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := NewTokenService("segredo", time.Hour)
	outro := NewTokenService("outro-segredo", time.Hour)

	token, err := svc.Generate("uid-1", "a@x.com", "A")
	require.NoError(t, err)

	_, err = outro.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	svc := NewTokenService("segredo", time.Hour)

	_, err := svc.Verify("nao-e-um-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
