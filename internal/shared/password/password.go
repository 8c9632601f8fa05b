// Package password hashes user passwords with bcrypt. Verify also accepts
// legacy unsalted SHA-256 digests (base64) so that such rows can still log in
// and be upgraded.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const MinLength = 6

var ErrMismatch = errors.New("password mismatch")

func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares plain against hash. It returns ErrMismatch when they do not
// match.
func Verify(hash, plain string) error {
	if isBcrypt(hash) {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrMismatch
			}
			return err
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(legacyDigest(plain)), []byte(hash)) != 1 {
		return ErrMismatch
	}
	return nil
}

// NeedsRehash reports whether hash uses the legacy scheme.
func NeedsRehash(hash string) bool {
	return !isBcrypt(hash)
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func legacyDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.StdEncoding.EncodeToString(sum[:])
}
