package forwardauth

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	randomPasswordBytes = 16
	randomPasswordCost  = 10
)

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), randomPasswordCost)
	return string(h), err
}

// RandomPasswordHash hashes a random secret. Auto-provisioned users get
// one so the store's non-null password constraint holds; the cleartext
// is discarded and the account can never authenticate with it.
func RandomPasswordHash() (string, error) {
	buf := make([]byte, randomPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate random password")
	}

	return HashPassword(hex.EncodeToString(buf))
}
