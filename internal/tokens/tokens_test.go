package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var secret = []byte("unit-test-secret")

func TestSignAndParseRoundTrip(t *testing.T) {
	token, err := SignAccessToken("42", "alice@example.org", "client", secret, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "alice@example.org", claims.Email)
	require.Equal(t, "client", claims.Role)
	require.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := SignAccessToken("42", "alice@example.org", "client", secret, time.Now().Add(-2*AccessTTL))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := SignAccessToken("42", "alice@example.org", "admin", secret, time.Now())
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}
