package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.GenerateGameToken("game-1")
	require.NoError(t, err)

	claims, err := issuer.ValidateGameToken(token)
	require.NoError(t, err)
	assert.Equal(t, "game-1", claims.GameID)
	assert.Equal(t, "game-1", claims.Subject)
}

func TestGameTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret", time.Hour).GenerateGameToken("game-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).ValidateGameToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGameTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issued := time.Now()
	issuer.now = func() time.Time { return issued }

	token, err := issuer.GenerateGameToken("game-1")
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = issuer.ValidateGameToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGameTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).ValidateGameToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
