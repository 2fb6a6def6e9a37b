package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("session-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	sessionID, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "session-abc", sessionID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.GenerateToken("session-abc")
	require.NoError(t, err)

	_, err = tm.ParseToken(token + "x")
	require.Error(t, err)

	_, err = tm.ParseToken("not-a-jwt")
	require.Error(t, err)

	_, err = tm.ParseToken("")
	require.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	signer := auth.NewTokenManager("secret-one", time.Hour)
	verifier := auth.NewTokenManager("secret-two", time.Hour)

	token, _, err := signer.GenerateToken("session-abc")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Nanosecond)

	token, _, err := tm.GenerateToken("session-abc")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = tm.ParseToken(token)
	require.Error(t, err)
}
