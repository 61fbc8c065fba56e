package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := ts.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := ts.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), -time.Minute)

	tok, err := ts.Issue("user-123")
	require.NoError(t, err)

	_, err = ts.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("k"), time.Hour)

	_, err := ts.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ts.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_TokensAreUnique(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), time.Hour)

	tok1, err := ts.Issue("user-123")
	require.NoError(t, err)
	tok2, err := ts.Issue("user-123")
	require.NoError(t, err)

	// Distinct JTIs make every issued token distinct.
	assert.NotEqual(t, tok1, tok2)
}
