package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", digest)

	require.True(t, CheckPassword(digest, "s3cret-password"))
	require.False(t, CheckPassword(digest, "wrong-password"))
}

func TestCheckPasswordFailsClosedOnMalformedDigest(t *testing.T) {
	require.False(t, CheckPassword("", "password"))
	require.False(t, CheckPassword("not-a-bcrypt-digest", "password"))
	require.False(t, CheckPassword("AQAAAAEAACcQAAAAE...", "password"))
}

func TestIsBcryptDigest(t *testing.T) {
	digest, err := HashPassword("password")
	require.NoError(t, err)
	require.True(t, IsBcryptDigest(digest))

	// ASP.NET Identity style base64 blob, the shape the migration pass hunts.
	require.False(t, IsBcryptDigest("AQAAAAEAACcQAAAAEJ5x"))
	require.False(t, IsBcryptDigest(""))
	require.False(t, IsBcryptDigest("$2x$zz$garbage"))
}
