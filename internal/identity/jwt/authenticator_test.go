package jwt

import (
	"testing"
	"time"

	"github.com/dadlab/jokeboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(secret string) *Authenticator {
	return NewAuthenticator(Config{
		SecretKey:              secret,
		RefreshedTokenDuration: 30 * time.Minute,
	})
}

func TestAccessToken_RoundTrip(t *testing.T) {
	auth := newTestAuthenticator("test-secret")
	user := &domain.User{Email: "a@x.com", Role: domain.RoleUser}

	token, err := auth.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Nil(t, claims.ExpiresAt, "login-issued tokens carry no expiry")
}

func TestRefreshedToken_RoundTrip(t *testing.T) {
	auth := newTestAuthenticator("test-secret")

	refreshed, err := auth.IssueRefreshedToken("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", refreshed.TokenType)
	assert.Equal(t, int((30 * time.Minute).Seconds()), refreshed.ExpiresIn)

	claims, err := auth.Decode(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecode_DifferentSecret(t *testing.T) {
	issuer := newTestAuthenticator("secret-one")
	verifier := newTestAuthenticator("secret-two")

	token, err := issuer.IssueAccessToken(&domain.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_Expired(t *testing.T) {
	auth := newTestAuthenticator("test-secret")

	refreshed, err := auth.IssueRefreshedToken("a@x.com")
	require.NoError(t, err)

	// Advance the clock past the 30-minute window.
	auth.now = func() time.Time { return time.Now().Add(31 * time.Minute) }

	_, err = auth.Decode(refreshed.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_Truncated(t *testing.T) {
	auth := newTestAuthenticator("test-secret")

	token, err := auth.IssueAccessToken(&domain.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = auth.Decode(token[:len(token)/2])
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_Garbage(t *testing.T) {
	auth := newTestAuthenticator("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := auth.Decode(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestRefresh_ExpiryDerivedFromReissueTime(t *testing.T) {
	auth := newTestAuthenticator("test-secret")

	first, err := auth.IssueRefreshedToken("a@x.com")
	require.NoError(t, err)
	firstClaims, err := auth.Decode(first.Token)
	require.NoError(t, err)

	// Reissue 10 minutes later; the new expiry must come from its own
	// issuance time, not the original token's.
	auth.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	second, err := auth.IssueRefreshedToken(firstClaims.Subject)
	require.NoError(t, err)
	secondClaims, err := auth.Decode(second.Token)
	require.NoError(t, err)

	gap := secondClaims.ExpiresAt.Time.Sub(firstClaims.ExpiresAt.Time)
	assert.InDelta(t, (10 * time.Minute).Seconds(), gap.Seconds(), 5)
}
