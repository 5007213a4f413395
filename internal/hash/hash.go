package hash

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor the shop has always used for new digests.
const Cost = 12

func HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

// CheckPassword returns false on any malformed digest.
func CheckPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// IsBcryptDigest reports whether a stored digest is in the single supported
// format. Anything else is a leftover from the pre-bcrypt era and is handled
// by the migration pass, never at login time.
func IsBcryptDigest(digest string) bool {
	if !strings.HasPrefix(digest, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(digest))
	return err == nil
}
